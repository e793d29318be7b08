package renderer

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/kjkrol/mandelgl/pkg/gfx"
)

// glDriver forwards gfx.Driver calls to the go-gl OpenGL 3.3 core bindings.
// It must be used on the thread whose GL context is current.
type glDriver struct{}

var _ gfx.Driver = glDriver{}

// NewGLDriver loads the GL entry points through procAddr, or through the
// default loader when procAddr is nil.
func NewGLDriver(procAddr func(name string) unsafe.Pointer) (gfx.Driver, error) {
	var err error
	if procAddr != nil {
		err = gl.InitWithProcAddrFunc(procAddr)
	} else {
		err = gl.Init()
	}
	if err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	return glDriver{}, nil
}

// Version returns the GL_VERSION string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return gl.Ptr(b)
}

func (glDriver) GenVertexArray() uint32 {
	var h uint32
	gl.GenVertexArrays(1, &h)
	return h
}

func (glDriver) DeleteVertexArray(h uint32) { gl.DeleteVertexArrays(1, &h) }
func (glDriver) BindVertexArray(h uint32)   { gl.BindVertexArray(h) }

func (glDriver) VertexAttribPointer(index uint32, size int32, xtype gfx.Enum, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, uint32(xtype), normalized, stride, gl.PtrOffset(offset))
}

func (glDriver) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (glDriver) GenBuffer() uint32 {
	var h uint32
	gl.GenBuffers(1, &h)
	return h
}

func (glDriver) DeleteBuffer(h uint32)                { gl.DeleteBuffers(1, &h) }
func (glDriver) BindBuffer(target gfx.Enum, h uint32) { gl.BindBuffer(uint32(target), h) }

func (glDriver) BufferData(target gfx.Enum, data []byte, usage gfx.Enum) {
	gl.BufferData(uint32(target), len(data), bytesPtr(data), uint32(usage))
}

func (glDriver) GetBufferSubData(target gfx.Enum, offset int, dst []byte) {
	if len(dst) == 0 {
		return
	}
	gl.GetBufferSubData(uint32(target), offset, len(dst), gl.Ptr(dst))
}

func (glDriver) CreateShader(xtype gfx.Enum) uint32 { return gl.CreateShader(uint32(xtype)) }

func (glDriver) ShaderSource(h uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(h, 1, csources, nil)
	free()
}

func (glDriver) CompileShader(h uint32) { gl.CompileShader(h) }

func (glDriver) GetShaderi(h uint32, pname gfx.Enum) int32 {
	var v int32
	gl.GetShaderiv(h, uint32(pname), &v)
	return v
}

func (d glDriver) GetShaderInfoLog(h uint32) string {
	n := d.GetShaderi(h, gfx.InfoLogLength)
	if n == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(h, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (glDriver) DeleteShader(h uint32)    { gl.DeleteShader(h) }
func (glDriver) CreateProgram() uint32    { return gl.CreateProgram() }
func (glDriver) AttachShader(p, s uint32) { gl.AttachShader(p, s) }
func (glDriver) LinkProgram(h uint32)     { gl.LinkProgram(h) }

func (glDriver) GetProgrami(h uint32, pname gfx.Enum) int32 {
	var v int32
	gl.GetProgramiv(h, uint32(pname), &v)
	return v
}

func (d glDriver) GetProgramInfoLog(h uint32) string {
	n := d.GetProgrami(h, gfx.InfoLogLength)
	if n == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(h, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (glDriver) UseProgram(h uint32)    { gl.UseProgram(h) }
func (glDriver) DeleteProgram(h uint32) { gl.DeleteProgram(h) }

func (glDriver) GetUniformLocation(h uint32, name string) int32 {
	return gl.GetUniformLocation(h, gl.Str(name+"\x00"))
}

func (glDriver) Uniform1f(loc int32, v float32)              { gl.Uniform1f(loc, v) }
func (glDriver) Uniform1i(loc int32, v int32)                { gl.Uniform1i(loc, v) }
func (glDriver) Uniform2f(loc int32, v0, v1 float32)         { gl.Uniform2f(loc, v0, v1) }
func (glDriver) Uniform3f(loc int32, v0, v1, v2 float32)     { gl.Uniform3f(loc, v0, v1, v2) }
func (glDriver) Uniform4f(loc int32, v0, v1, v2, v3 float32) { gl.Uniform4f(loc, v0, v1, v2, v3) }

func (glDriver) UniformMatrix2fv(loc int32, transpose bool, value []float32) {
	gl.UniformMatrix2fv(loc, 1, transpose, &value[0])
}

func (glDriver) UniformMatrix3fv(loc int32, transpose bool, value []float32) {
	gl.UniformMatrix3fv(loc, 1, transpose, &value[0])
}

func (glDriver) UniformMatrix4fv(loc int32, transpose bool, value []float32) {
	gl.UniformMatrix4fv(loc, 1, transpose, &value[0])
}

func (glDriver) GenTexture() uint32 {
	var h uint32
	gl.GenTextures(1, &h)
	return h
}

func (glDriver) DeleteTexture(h uint32)                  { gl.DeleteTextures(1, &h) }
func (glDriver) ActiveTexture(unit gfx.Enum)             { gl.ActiveTexture(uint32(unit)) }
func (glDriver) BindTexture(target gfx.Enum, h uint32)   { gl.BindTexture(uint32(target), h) }
func (glDriver) GenerateMipmap(target gfx.Enum)          { gl.GenerateMipmap(uint32(target)) }
func (glDriver) PixelStorei(pname gfx.Enum, param int32) { gl.PixelStorei(uint32(pname), param) }

func (glDriver) TexImage2D(target gfx.Enum, level, internalFormat, width, height int32, format, xtype gfx.Enum, pixels []byte) {
	gl.TexImage2D(uint32(target), level, internalFormat, width, height, 0, uint32(format), uint32(xtype), bytesPtr(pixels))
}

func (glDriver) TexParameteri(target, pname gfx.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (glDriver) ClearColor(r, g, b, a float32)      { gl.ClearColor(r, g, b, a) }
func (glDriver) Clear(mask gfx.Enum)                { gl.Clear(uint32(mask)) }
func (glDriver) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (glDriver) DrawElements(mode gfx.Enum, count int32, xtype gfx.Enum, offset int) {
	gl.DrawElements(uint32(mode), count, uint32(xtype), gl.PtrOffset(offset))
}
