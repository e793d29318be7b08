package gfx_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/mandelgl/pkg/gfx"
	"github.com/kjkrol/mandelgl/pkg/gfx/gfxtest"
)

func TestUniform_NotFoundIsHarmless(t *testing.T) {
	ctx, d := newContext(t)
	p := newProgram(t, ctx)

	u := gfx.NewUniform("nonexistent_name", p)
	assert.False(t, u.Found())
	assert.Equal(t, gfx.NotFound, u.Location())
	assert.Equal(t, "nonexistent_name", u.Name())

	u.SetInt(5)
	assert.Zero(t, d.UniformCount(p.Handle()), "no program state changes")

	m, err := gfx.NewMesh(ctx, &gfx.MeshConfig{
		Program:  p,
		Vertices: quadVertices,
		Indices:  quadIndices,
		Layout:   quadLayout(),
	})
	require.NoError(t, err)
	require.NoError(t, m.Draw())
	require.Len(t, d.Draws, 1)
	assert.Equal(t, int32(6), d.Draws[0].Count)
	assert.Zero(t, d.UniformCount(p.Handle()))
}

func TestUniform_LookupLeavesProgramUnbound(t *testing.T) {
	ctx, d := newContext(t)
	p := newProgram(t, ctx)
	require.True(t, p.Bound())

	u := gfx.NewUniform("max_iter", p)
	assert.True(t, u.Found())
	assert.False(t, p.Bound())
	assert.Zero(t, d.CurrentProgram())
}

func TestUniform_Setters(t *testing.T) {
	ctx, d := newContext(t)
	p := newProgram(t, ctx)
	h := p.Handle()

	iter := gfx.NewUniform("max_iter", p)
	iter.SetInt(64)
	assert.True(t, p.Bound(), "setting a value binds the owning program")
	v, ok := d.Uniform(h, "max_iter")
	require.True(t, ok)
	assert.Equal(t, []int32{64}, v.Ints)

	mvp := gfx.NewUniform("mvp", p)
	m := mgl32.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	mvp.SetMat3(m)
	v, ok = d.Uniform(h, "mvp")
	require.True(t, ok)
	assert.Equal(t, m[:], v.Floats, "column-major, not transposed")

	ident4 := mgl32.Ident4()
	tests := []struct {
		name string
		set  func(*gfx.Uniform)
		want gfxtest.UniformValue
	}{
		{"float", func(u *gfx.Uniform) { u.SetFloat(0.5) }, gfxtest.UniformValue{Floats: []float32{0.5}}},
		{"vec2", func(u *gfx.Uniform) { u.Set2f(1, 2) }, gfxtest.UniformValue{Floats: []float32{1, 2}}},
		{"vec3", func(u *gfx.Uniform) { u.SetVec3(mgl32.Vec3{1, 2, 3}) }, gfxtest.UniformValue{Floats: []float32{1, 2, 3}}},
		{"vec4", func(u *gfx.Uniform) { u.SetVec4(mgl32.Vec4{1, 2, 3, 4}) }, gfxtest.UniformValue{Floats: []float32{1, 2, 3, 4}}},
		{"mat2", func(u *gfx.Uniform) { u.SetMat2(mgl32.Ident2()) }, gfxtest.UniformValue{Floats: []float32{1, 0, 0, 1}}},
		{"mat4", func(u *gfx.Uniform) { u.SetMat4(mgl32.Ident4()) }, gfxtest.UniformValue{Floats: ident4[:]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the fake driver stores whatever is uploaded to a valid location
			tt.set(iter)
			got, ok := d.Uniform(h, "max_iter")
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUniform_ClosedProgram(t *testing.T) {
	ctx, d := newContext(t)
	p := newProgram(t, ctx)
	u := gfx.NewUniform("max_iter", p)
	p.Close()

	d.Reset()
	u.SetInt(3)
	u.SetMat3(mgl32.Ident3())
	assert.Empty(t, d.Calls)
}
