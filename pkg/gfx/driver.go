package gfx

// Driver describes the subset of OpenGL 3.3 core entry points used by this
// package. Implementations wrap real bindings (see internal/renderer) or
// simulate them (see gfxtest). All methods operate on the GL context that is
// current on the calling thread.
type Driver interface {
	GenVertexArray() uint32
	DeleteVertexArray(array uint32)
	BindVertexArray(array uint32)
	VertexAttribPointer(index uint32, size int32, xtype Enum, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target Enum, buffer uint32)
	// BufferData replaces the whole data store of the buffer bound to target.
	// A nil data slice allocates an empty store.
	BufferData(target Enum, data []byte, usage Enum)
	// GetBufferSubData copies len(dst) bytes starting at offset from the buffer
	// bound to target.
	GetBufferSubData(target Enum, offset int, dst []byte)

	CreateShader(xtype Enum) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderi(shader uint32, pname Enum) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program uint32, pname Enum) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// GetUniformLocation returns -1 when the program has no active uniform
	// with the given name.
	GetUniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform1i(location int32, v int32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix2fv(location int32, transpose bool, value []float32)
	UniformMatrix3fv(location int32, transpose bool, value []float32)
	UniformMatrix4fv(location int32, transpose bool, value []float32)

	GenTexture() uint32
	DeleteTexture(texture uint32)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, texture uint32)
	TexImage2D(target Enum, level, internalFormat, width, height int32, format, xtype Enum, pixels []byte)
	TexParameteri(target, pname Enum, param int32)
	GenerateMipmap(target Enum)
	PixelStorei(pname Enum, param int32)

	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Viewport(x, y, width, height int32)
	DrawElements(mode Enum, count int32, xtype Enum, offset int)
}
