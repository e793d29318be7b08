package renderer

import (
	"log/slog"

	"github.com/kjkrol/mandelgl/pkg/gfx"
	"github.com/kjkrol/mandelgl/pkg/window"
)

// NewRendererFactory returns a factory that binds GL through the window's
// loader and builds a Mandelbrot renderer. onReady, if set, receives the
// renderer before it is handed to the window.
func NewRendererFactory(conf Config, onReady func(*Mandelbrot)) window.RendererFactory {
	return func(w *window.Window) (window.Renderer, error) {
		driver, err := NewGLDriver(w.ProcAddress())
		if err != nil {
			return nil, err
		}
		slog.Info("renderer: gl context", "version", Version())
		m, err := NewMandelbrot(gfx.NewContext(driver), conf)
		if err != nil {
			return nil, err
		}
		if onReady != nil {
			onReady(m)
		}
		return m, nil
	}
}
