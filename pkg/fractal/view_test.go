package fractal

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDefaultView(t *testing.T) {
	v := DefaultView()
	assert.Equal(t, mgl32.Vec2{-0.5, 0}, v.Pos)
	assert.Equal(t, float32(1), v.Mag)
	assert.Equal(t, int32(2), v.Iter)
}

func TestView_Matrix(t *testing.T) {
	v := View{Pos: mgl32.Vec2{0.25, -0.5}, Mag: 2, Iter: 8}
	aspect := float32(16) / 9

	want := mgl32.Mat3{
		aspect * 0.5, 0, 0,
		0, 0.5, 0,
		aspect * 0.25, -0.5, 0,
	}
	assert.True(t, v.Matrix(aspect).ApproxEqual(want), "got %v", v.Matrix(aspect))
}

func TestView_PlanePoint(t *testing.T) {
	v := DefaultView()

	center := v.PlanePoint(1, mgl32.Vec2{0, 0})
	assert.InDelta(t, -0.5, center.X(), 1e-6)
	assert.InDelta(t, 0, center.Y(), 1e-6)

	corner := v.PlanePoint(1, mgl32.Vec2{1, 1})
	assert.InDelta(t, 0.5, corner.X(), 1e-6)
	assert.InDelta(t, 1, corner.Y(), 1e-6)

	v.Mag = 4
	corner = v.PlanePoint(2, mgl32.Vec2{1, 1})
	assert.InDelta(t, 2*(0.25-0.5), corner.X(), 1e-6)
	assert.InDelta(t, 0.25, corner.Y(), 1e-6)
}

func TestView_DragKeepsPointUnderPointer(t *testing.T) {
	v := View{Pos: mgl32.Vec2{-0.5, 0.25}, Mag: 4, Iter: 2}
	const width, height = 800, 600
	aspect := float32(width) / height

	// pointer at pixel (600, 150) dragged to (500, 250)
	toUV := func(x, y float32) mgl32.Vec2 {
		return mgl32.Vec2{2*x/width - 1, 1 - 2*y/height}
	}
	before := v.PlanePoint(aspect, toUV(600, 150))
	v.Drag(-100, 100, width, height)
	after := v.PlanePoint(aspect, toUV(500, 250))

	assert.InDelta(t, before.X(), after.X(), 1e-5)
	assert.InDelta(t, before.Y(), after.Y(), 1e-5)
}

func TestView_DragIgnoresEmptyFramebuffer(t *testing.T) {
	v := DefaultView()
	v.Drag(10, 10, 0, 600)
	assert.Equal(t, DefaultView(), v)
}
