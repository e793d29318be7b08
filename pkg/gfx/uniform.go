package gfx

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// NotFound is the location of a uniform the program does not expose, either
// because it was never declared or because the compiler removed it as unused.
const NotFound int32 = -1

// Uniform is a named variable of one ShaderProgram. Uploads to a uniform that
// was not found are still issued and silently ignored by the driver.
type Uniform struct {
	program  *ShaderProgram
	name     string
	location int32
}

// NewUniform resolves name against p. The program is bound for the lookup and
// unbound afterwards.
func NewUniform(name string, p *ShaderProgram) *Uniform {
	p.Bind()
	location := NotFound
	if p.handle != 0 {
		location = p.ctx.driver.GetUniformLocation(p.handle, name)
	}
	p.Unbind()
	if location == NotFound {
		slog.Debug("gfx: uniform not found", "name", name, "program", p.handle)
	}
	return &Uniform{program: p, name: name, location: location}
}

func (u *Uniform) Name() string { return u.name }

func (u *Uniform) Location() int32 { return u.location }

func (u *Uniform) Found() bool { return u.location != NotFound }

// use binds the owning program and returns its driver, or nil if the program
// has been released.
func (u *Uniform) use() Driver {
	if u.program.handle == 0 {
		return nil
	}
	u.program.Bind()
	return u.program.ctx.driver
}

func (u *Uniform) SetFloat(v float32) {
	if d := u.use(); d != nil {
		d.Uniform1f(u.location, v)
	}
}

func (u *Uniform) SetInt(v int32) {
	if d := u.use(); d != nil {
		d.Uniform1i(u.location, v)
	}
}

func (u *Uniform) Set2f(x, y float32) {
	if d := u.use(); d != nil {
		d.Uniform2f(u.location, x, y)
	}
}

func (u *Uniform) Set3f(x, y, z float32) {
	if d := u.use(); d != nil {
		d.Uniform3f(u.location, x, y, z)
	}
}

func (u *Uniform) Set4f(x, y, z, w float32) {
	if d := u.use(); d != nil {
		d.Uniform4f(u.location, x, y, z, w)
	}
}

func (u *Uniform) SetVec3(v mgl32.Vec3) {
	u.Set3f(v[0], v[1], v[2])
}

func (u *Uniform) SetVec4(v mgl32.Vec4) {
	u.Set4f(v[0], v[1], v[2], v[3])
}

// SetMat2 uploads m in column-major order without transposition; the same
// holds for SetMat3 and SetMat4.
func (u *Uniform) SetMat2(m mgl32.Mat2) {
	if d := u.use(); d != nil {
		d.UniformMatrix2fv(u.location, false, m[:])
	}
}

func (u *Uniform) SetMat3(m mgl32.Mat3) {
	if d := u.use(); d != nil {
		d.UniformMatrix3fv(u.location, false, m[:])
	}
}

func (u *Uniform) SetMat4(m mgl32.Mat4) {
	if d := u.use(); d != nil {
		d.UniformMatrix4fv(u.location, false, m[:])
	}
}
