package gfx_test

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/mandelgl/pkg/gfx"
)

const brokenFragment = `#version 330 core
out vec4 color;
void main() {
	color = vec4(1.0)
}
#error expected ';'
`

func TestNewShaderProgram_FromFiles(t *testing.T) {
	ctx, d := newContext(t)
	vert := writeFile(t, "mandelbrot_vert.glsl", vertexSource)
	frag := writeFile(t, "mandelbrot_frag.glsl", fragmentSource)

	p, err := gfx.NewShaderProgram(ctx, vert, frag)
	require.NoError(t, err)

	assert.NotZero(t, p.Handle())
	assert.True(t, p.Bound(), "a new program is left in use")
	assert.Equal(t, p.Handle(), d.CurrentProgram())
	assert.Zero(t, d.LiveShaders(), "stage objects are deleted once linked")
	assert.Zero(t, ctx.Live(gfx.KindShader))
	assert.Equal(t, 1, ctx.Live(gfx.KindProgram))

	v, f := p.Sources()
	assert.Equal(t, vert, v)
	assert.Equal(t, frag, f)
}

func TestNewShaderProgram_FragmentCompileError(t *testing.T) {
	ctx, d := newContext(t)
	vert := writeFile(t, "ok.vert", vertexSource)
	frag := writeFile(t, "broken.frag", brokenFragment)

	p, err := gfx.NewShaderProgram(ctx, vert, frag)
	assert.Nil(t, p)
	require.ErrorIs(t, err, gfx.ErrCompile)

	var ce *gfx.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, gfx.FragmentStage, ce.Stage)
	assert.Equal(t, frag, ce.Source)
	assert.Contains(t, ce.Log, "#error")
	assert.Contains(t, err.Error(), frag)

	assert.Zero(t, d.LivePrograms())
	assert.Zero(t, d.LiveShaders())
	assert.Zero(t, d.Count("CreateProgram"))
	assert.Zero(t, ctx.Live(gfx.KindProgram))
	assert.Zero(t, ctx.Live(gfx.KindShader))
}

func TestNewShaderProgram_VertexCompileError(t *testing.T) {
	ctx, d := newContext(t)

	_, err := gfx.NewShaderProgramFromSources(ctx,
		gfx.ShaderSource{Name: "empty.vert", Code: "#version 330 core\n"},
		gfx.ShaderSource{Name: "ok.frag", Code: fragmentSource},
	)

	var ce *gfx.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, gfx.VertexStage, ce.Stage)
	assert.Equal(t, "empty.vert", ce.Source)
	assert.Equal(t, 1, d.Count("CreateShader"), "fragment stage is not attempted")
	assert.Zero(t, d.LiveShaders())
}

func TestNewShaderProgram_LinkError(t *testing.T) {
	ctx, d := newContext(t)
	d.Link = func(_, _ string) (bool, string) {
		return false, "error: varying uv not written by vertex shader"
	}

	p, err := gfx.NewShaderProgramFromSources(ctx,
		gfx.ShaderSource{Name: "a.vert", Code: vertexSource},
		gfx.ShaderSource{Name: "b.frag", Code: fragmentSource},
	)
	assert.Nil(t, p)
	require.ErrorIs(t, err, gfx.ErrLink)

	var le *gfx.LinkError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "a.vert", le.Vertex)
	assert.Equal(t, "b.frag", le.Fragment)
	assert.Contains(t, err.Error(), "varying uv")

	assert.Zero(t, d.LivePrograms())
	assert.Zero(t, d.LiveShaders())
	assert.Zero(t, ctx.Live(gfx.KindProgram))
}

func TestNewShaderProgram_MissingFile(t *testing.T) {
	ctx, d := newContext(t)
	frag := writeFile(t, "ok.frag", fragmentSource)
	missing := filepath.Join(t.TempDir(), "nope.vert")

	_, err := gfx.NewShaderProgram(ctx, missing, frag)
	require.ErrorIs(t, err, gfx.ErrIO)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Empty(t, d.Calls, "nothing reaches the driver")
}

func TestNewShaderProgram_AllocationFailure(t *testing.T) {
	ctx, d := newContext(t)
	d.FailAllocations = true

	_, err := gfx.NewShaderProgramFromSources(ctx,
		gfx.ShaderSource{Name: "a.vert", Code: vertexSource},
		gfx.ShaderSource{Name: "b.frag", Code: fragmentSource},
	)
	require.ErrorIs(t, err, gfx.ErrAllocation)
	assert.Zero(t, ctx.Live(gfx.KindShader))
}

func TestShaderProgram_BindUnbind(t *testing.T) {
	ctx, d := newContext(t)
	a := newProgram(t, ctx)
	b := newProgram(t, ctx)

	assert.True(t, b.Bound())
	assert.False(t, a.Bound())

	d.Reset()
	a.Bind()
	a.Bind()
	assert.Equal(t, 1, d.Count("UseProgram"))

	b.Unbind()
	assert.True(t, a.Bound(), "unbinding a program that is not current is a no-op")
	a.Unbind()
	assert.Zero(t, d.CurrentProgram())
}

func TestShaderProgram_Close(t *testing.T) {
	ctx, d := newContext(t)
	p := newProgram(t, ctx)
	h := p.Handle()

	p.Close()
	p.Close()
	assert.False(t, d.IsProgram(h))
	assert.Zero(t, d.CurrentProgram())
	assert.Zero(t, p.Handle())
	assert.False(t, p.Bound())
	assert.Zero(t, ctx.Live(gfx.KindProgram))
	assert.Equal(t, 1, d.Count("DeleteProgram"))

	p.Bind()
	assert.Zero(t, d.CurrentProgram(), "a closed program cannot be bound")
}
