// Package fractal holds the Mandelbrot viewer state: where the camera looks
// on the complex plane, how far it is zoomed in and how many iterations the
// escape-time loop may run.
package fractal

import "github.com/go-gl/mathgl/mgl32"

const (
	DefaultIterations    = 2
	DefaultMinIterations = 2
	DefaultMaxIterations = 1024
	DefaultMinMag        = 0.001
)

// View is the camera over the complex plane.
type View struct {
	Pos  mgl32.Vec2
	Mag  float32
	Iter int32
}

// DefaultView frames the whole set.
func DefaultView() View {
	return View{Pos: mgl32.Vec2{-0.5, 0}, Mag: 1, Iter: DefaultIterations}
}

// Transform maps quad texture coordinates onto the plane: translate to Pos,
// then scale by 1/Mag.
func (v View) Transform() mgl32.Mat3 {
	s := 1 / v.Mag
	return mgl32.Translate2D(v.Pos.X(), v.Pos.Y()).Mul3(mgl32.Scale2D(s, s))
}

// Projection stretches x by the window aspect ratio. The bottom row is zero,
// so only the xy part of the result is meaningful.
func Projection(aspect float32) mgl32.Mat3 {
	return mgl32.Mat3{
		aspect, 0, 0,
		0, 1, 0,
		0, 0, 0,
	}
}

// Matrix returns projection * view * model with an identity model, the value
// uploaded to the mvp uniform.
func (v View) Matrix(aspect float32) mgl32.Mat3 {
	return Projection(aspect).Mul3(v.Transform()).Mul3(mgl32.Ident3())
}

// PlanePoint returns where texture coordinate uv lands on the complex plane.
func (v View) PlanePoint(aspect float32, uv mgl32.Vec2) mgl32.Vec2 {
	p := v.Matrix(aspect).Mul3x1(uv.Vec3(1))
	return p.Vec2()
}

// Drag pans by a pointer movement of (dx, dy) pixels over a width x height
// framebuffer so the plane point under the pointer stays under it. Screen y
// grows downwards.
func (v *View) Drag(dx, dy float32, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.Pos[0] -= 2 * dx / (float32(width) * v.Mag)
	v.Pos[1] += 2 * dy / (float32(height) * v.Mag)
}
