package renderer

import (
	"errors"
	"image/color"
	"log/slog"
	"math"

	"github.com/kjkrol/mandelgl/pkg/fractal"
	"github.com/kjkrol/mandelgl/pkg/gfx"
	"github.com/kjkrol/mandelgl/pkg/window"
)

// Uniform names the Mandelbrot shaders are expected to declare. Any of them
// may be missing; uploads to a missing uniform are ignored.
const (
	UniformMVP        = "mvp"
	UniformMaxIter    = "max_iter"
	UniformUsePalette = "use_palette"
	DefaultSampler    = "palette"
)

// wheelZoom is the magnification factor applied per scroll step.
const wheelZoom = 0.1

type PaletteConfig struct {
	Path    string
	Unit    int32
	Sampler string
	Format  gfx.ColorFormat
}

type Config struct {
	VertexPath   string
	FragmentPath string
	Palette      PaletteConfig
	ClearColor   color.Color
	View         fractal.View
	Limits       fractal.Limits
}

// Mandelbrot draws the escape-time fractal on a fullscreen quad and moves the
// view from keyboard and mouse input.
type Mandelbrot struct {
	ctx      *gfx.Context
	conf     Config
	mesh     *gfx.Mesh
	view     fractal.View
	controls *fractal.Controls

	mvp        *gfx.Uniform
	maxIter    *gfx.Uniform
	usePalette *gfx.Uniform

	width, height int

	// pointer position of a left-button drag in progress
	dragging     bool
	dragX, dragY int
}

var _ window.Renderer = (*Mandelbrot)(nil)

// NewMandelbrot builds the shader program, the optional palette texture and
// the quad mesh. On error everything created so far is released.
func NewMandelbrot(ctx *gfx.Context, conf Config) (*Mandelbrot, error) {
	if conf.Palette.Sampler == "" {
		conf.Palette.Sampler = DefaultSampler
	}
	program, err := gfx.NewShaderProgram(ctx, conf.VertexPath, conf.FragmentPath)
	if err != nil {
		return nil, err
	}
	meshConf := &gfx.MeshConfig{
		Program:  program,
		Vertices: quadVertices,
		Indices:  quadIndices,
		Layout:   quadLayout(),
		Sampler:  conf.Palette.Sampler,
	}
	if conf.Palette.Path != "" {
		tex, err := gfx.NewTexture(ctx, conf.Palette.Path, conf.Palette.Unit, conf.Palette.Format)
		if err != nil {
			program.Close()
			return nil, err
		}
		tex.SetSampling(gfx.Linear, gfx.Linear, gfx.ClampToEdge, gfx.ClampToEdge)
		meshConf.Texture = tex
	}
	mesh, err := gfx.NewMesh(ctx, meshConf)
	if err != nil {
		meshConf.Program.Close()
		if meshConf.Texture != nil {
			meshConf.Texture.Close()
		}
		return nil, err
	}

	m := &Mandelbrot{
		ctx:      ctx,
		conf:     conf,
		mesh:     mesh,
		view:     conf.View,
		controls: fractal.NewControls(conf.Limits),
	}
	m.resolveUniforms()
	c := colorToFloat(conf.ClearColor)
	ctx.Driver().ClearColor(c[0], c[1], c[2], c[3])
	slog.Info("renderer: mandelbrot ready",
		"vertex", conf.VertexPath,
		"fragment", conf.FragmentPath,
		"palette", conf.Palette.Path,
	)
	return m, nil
}

func (m *Mandelbrot) resolveUniforms() {
	p := m.mesh.Program()
	m.mvp = gfx.NewUniform(UniformMVP, p)
	m.maxIter = gfx.NewUniform(UniformMaxIter, p)
	m.usePalette = gfx.NewUniform(UniformUsePalette, p)
	if m.mesh.Texture() != nil {
		m.usePalette.SetInt(1)
	} else {
		m.usePalette.SetInt(0)
	}
}

func (m *Mandelbrot) View() fractal.View { return m.view }

func (m *Mandelbrot) SetView(v fractal.View) { m.view = v }

// HandleEvent feeds input to the controls: keys, wheel zoom and left-button
// drag to pan. It reports whether the event was consumed.
func (m *Mandelbrot) HandleEvent(e window.Event) bool {
	switch ev := e.(type) {
	case window.KeyPress:
		if ev.Label == fractal.KeyResetView {
			m.view = m.conf.View
			return true
		}
		return m.controls.KeyDown(ev.Label)
	case window.KeyRelease:
		return m.controls.KeyUp(ev.Label)
	case window.ButtonPress:
		if ev.Button != window.ButtonLeft {
			return false
		}
		m.dragging = true
		m.dragX, m.dragY = ev.X, ev.Y
		return true
	case window.ButtonRelease:
		if ev.Button != window.ButtonLeft || !m.dragging {
			return false
		}
		m.dragging = false
		return true
	case window.MotionNotify:
		if !m.dragging {
			return false
		}
		m.view.Drag(float32(ev.X-m.dragX), float32(ev.Y-m.dragY), m.width, m.height)
		m.dragX, m.dragY = ev.X, ev.Y
		return true
	case window.MouseWheel:
		if ev.DeltaY == 0 {
			return false
		}
		m.view.Mag *= float32(math.Pow(1+wheelZoom, ev.DeltaY))
		m.view.Mag = max(m.view.Mag, m.conf.Limits.MinMag)
		return true
	}
	return false
}

// Render advances the view by the frame delta and draws.
func (m *Mandelbrot) Render(w *window.Window) {
	m.Update(float32(w.FrameDelta().Seconds()))
	width, height := w.Size()
	if err := m.Draw(width, height); err != nil {
		slog.Error("renderer: draw failed", "err", err)
	}
}

func (m *Mandelbrot) Update(dt float32) {
	m.controls.Update(&m.view, dt)
}

// Draw renders one frame into a width x height framebuffer. A zero-sized
// framebuffer, as reported for minimized windows, draws nothing.
func (m *Mandelbrot) Draw(width, height int) error {
	if m.mesh == nil {
		return gfx.ErrReleased
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	d := m.ctx.Driver()
	if width != m.width || height != m.height {
		d.Viewport(0, 0, int32(width), int32(height))
		m.width, m.height = width, height
	}
	d.Clear(gfx.ColorBufferBit)

	aspect := float32(width) / float32(height)
	m.mvp.SetMat3(m.view.Matrix(aspect))
	m.maxIter.SetInt(m.view.Iter)
	return m.mesh.Draw()
}

// Reload recompiles the shader files. On failure the current program keeps
// drawing and the error is returned.
func (m *Mandelbrot) Reload() error {
	if m.mesh == nil {
		return gfx.ErrReleased
	}
	program, err := gfx.NewShaderProgram(m.ctx, m.conf.VertexPath, m.conf.FragmentPath)
	if err != nil {
		var ce *gfx.CompileError
		if errors.As(err, &ce) {
			slog.Warn("renderer: shader reload rejected", "stage", ce.Stage, "source", ce.Source, "log", ce.Log)
		} else {
			slog.Warn("renderer: shader reload failed", "err", err)
		}
		return err
	}
	old := m.mesh.SwapProgram(program)
	old.Close()
	m.resolveUniforms()
	slog.Info("renderer: shaders reloaded", "program", program.Handle())
	return nil
}

// Stats returns live GPU object counts by kind.
func (m *Mandelbrot) Stats() map[gfx.ObjectKind]int {
	return m.ctx.Stats()
}

func (m *Mandelbrot) Close() {
	if m.mesh == nil {
		return
	}
	m.mesh.Close()
	m.mesh = nil
	for kind, n := range m.ctx.Stats() {
		if n != 0 {
			slog.Warn("renderer: objects still live after close", "kind", kind, "count", n)
		}
	}
}
