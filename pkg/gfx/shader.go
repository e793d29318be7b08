package gfx

import (
	"fmt"
	"log/slog"
	"os"
)

// Stage is one programmable pipeline stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	if s == FragmentStage {
		return "fragment"
	}
	return "vertex"
}

func (s Stage) glType() Enum {
	if s == FragmentStage {
		return FragmentShader
	}
	return VertexShader
}

// ShaderSource is the text of one stage together with the name used to
// identify it in errors, usually the file path.
type ShaderSource struct {
	Name string
	Code string
}

// ReadShaderSource loads a stage from a UTF-8 text file.
func ReadShaderSource(path string) (ShaderSource, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return ShaderSource{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return ShaderSource{Name: path, Code: string(code)}, nil
}

// ShaderProgram is a linked vertex + fragment program.
type ShaderProgram struct {
	ctx      *Context
	handle   uint32
	vertex   string
	fragment string
}

// NewShaderProgram reads, compiles and links the two stage files and leaves
// the program bound.
func NewShaderProgram(ctx *Context, vertexPath, fragmentPath string) (*ShaderProgram, error) {
	vertex, err := ReadShaderSource(vertexPath)
	if err != nil {
		return nil, err
	}
	fragment, err := ReadShaderSource(fragmentPath)
	if err != nil {
		return nil, err
	}
	return NewShaderProgramFromSources(ctx, vertex, fragment)
}

// NewShaderProgramFromSources compiles and links in-memory stage sources and
// leaves the program bound. Intermediate stage objects are deleted on every
// path, so a failed build leaks nothing.
func NewShaderProgramFromSources(ctx *Context, vertex, fragment ShaderSource) (*ShaderProgram, error) {
	vs, err := compileStage(ctx, VertexStage, vertex)
	if err != nil {
		return nil, err
	}
	defer deleteStage(ctx, vs)

	fs, err := compileStage(ctx, FragmentStage, fragment)
	if err != nil {
		return nil, err
	}
	defer deleteStage(ctx, fs)

	d := ctx.driver
	handle := d.CreateProgram()
	if err := ctx.allocated(KindProgram, handle); err != nil {
		return nil, err
	}
	d.AttachShader(handle, vs)
	d.AttachShader(handle, fs)
	d.LinkProgram(handle)
	if d.GetProgrami(handle, LinkStatus) != True {
		log := d.GetProgramInfoLog(handle)
		d.DeleteProgram(handle)
		ctx.released(KindProgram, handle)
		return nil, &LinkError{Vertex: vertex.Name, Fragment: fragment.Name, Log: log}
	}

	p := &ShaderProgram{ctx: ctx, handle: handle, vertex: vertex.Name, fragment: fragment.Name}
	slog.Debug("gfx: program linked", "vertex", vertex.Name, "fragment", fragment.Name, "handle", handle)
	p.Bind()
	return p, nil
}

func compileStage(ctx *Context, stage Stage, src ShaderSource) (uint32, error) {
	d := ctx.driver
	shader := d.CreateShader(stage.glType())
	if err := ctx.allocated(KindShader, shader); err != nil {
		return 0, err
	}
	d.ShaderSource(shader, src.Code)
	d.CompileShader(shader)
	if d.GetShaderi(shader, CompileStatus) != True {
		log := d.GetShaderInfoLog(shader)
		deleteStage(ctx, shader)
		return 0, &CompileError{Stage: stage, Source: src.Name, Log: log}
	}
	return shader, nil
}

func deleteStage(ctx *Context, shader uint32) {
	ctx.driver.DeleteShader(shader)
	ctx.released(KindShader, shader)
}

func (p *ShaderProgram) Handle() uint32 { return p.handle }

// Sources returns the names of the vertex and fragment stages.
func (p *ShaderProgram) Sources() (vertex, fragment string) {
	return p.vertex, p.fragment
}

func (p *ShaderProgram) Bound() bool {
	return p.handle != 0 && p.ctx.program == p.handle
}

func (p *ShaderProgram) Bind() {
	if p.handle == 0 {
		return
	}
	p.ctx.useProgram(p.handle)
}

func (p *ShaderProgram) Unbind() {
	if !p.Bound() {
		return
	}
	p.ctx.useProgram(0)
}

// Close stops using the program if it is current and deletes it.
func (p *ShaderProgram) Close() {
	if p.handle == 0 {
		return
	}
	p.Unbind()
	p.ctx.driver.DeleteProgram(p.handle)
	p.ctx.forgetProgram(p.handle)
	p.ctx.released(KindProgram, p.handle)
	p.handle = 0
}
