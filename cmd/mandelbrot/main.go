// Command mandelbrot renders the Mandelbrot set in an OpenGL window.
//
// Keys: W/S/A/D pan, Space and Left Shift zoom, Q/E double or halve the
// iteration count, R resets the view and Escape quits.
package main

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/kjkrol/mandelgl/internal/config"
	"github.com/kjkrol/mandelgl/internal/reload"
	"github.com/kjkrol/mandelgl/internal/renderer"
	"github.com/kjkrol/mandelgl/pkg/fractal"
	"github.com/kjkrol/mandelgl/pkg/window"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

var app = &cli.App{
	Name:   filepath.Base(os.Args[0]),
	Usage:  "explore the Mandelbrot set",
	Flags:  viewerFlags,
	Action: run,
	Commands: []*cli.Command{
		{
			Name:   "dumpconfig",
			Usage:  "print the effective configuration as TOML",
			Flags:  viewerFlags,
			Action: dumpConfig,
		},
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	return cfg.Encode(ctx.App.Writer)
}

func setupLogging(cfg config.LogConfig) error {
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func rendererConfig(cfg config.Config) (renderer.Config, error) {
	format, err := cfg.Palette.ColorFormat()
	if err != nil {
		return renderer.Config{}, err
	}
	return renderer.Config{
		VertexPath:   cfg.Shader.Vertex,
		FragmentPath: cfg.Shader.Fragment,
		Palette: renderer.PaletteConfig{
			Path:    cfg.Palette.Path,
			Unit:    cfg.Palette.Unit,
			Sampler: cfg.Palette.Sampler,
			Format:  format,
		},
		ClearColor: color.Black,
		View:       cfg.View.View(),
		Limits:     cfg.Controls.Limits(),
	}, nil
}

func run(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg.Log); err != nil {
		return err
	}
	rconf, err := rendererConfig(cfg)
	if err != nil {
		return err
	}

	var mandelbrot *renderer.Mandelbrot
	w, err := window.New(window.Config{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      cfg.Window.Title,
		VSync:      cfg.Window.VSync,
		Resizable:  cfg.Window.Resizable,
		Fullscreen: cfg.Window.Fullscreen,
	}, renderer.NewRendererFactory(rconf, func(m *renderer.Mandelbrot) { mandelbrot = m }))
	if err != nil {
		return err
	}
	defer w.Close()

	if cfg.Shader.Watch {
		if err := watchShaders(w, mandelbrot, cfg.Shader); err != nil {
			return err
		}
	}

	w.RefreshRate(cfg.Window.FPS)
	w.Show()
	slog.Info("mandelbrot: started", "width", cfg.Window.Width, "height", cfg.Window.Height, "fps", cfg.Window.FPS)

	w.ListenEvents(func(event window.Event) {
		switch e := event.(type) {
		case window.DestroyNotify:
			w.Stop()
		case window.KeyPress:
			if e.Label == fractal.KeyQuit {
				w.Stop()
				return
			}
			mandelbrot.HandleEvent(e)
		default:
			mandelbrot.HandleEvent(e)
		}
	}, window.DrainAll())

	slog.Info("mandelbrot: stopped", "frames", w.Frames())
	return nil
}

// watchShaders recompiles the program on the render thread whenever one of
// the shader files changes.
func watchShaders(w *window.Window, m *renderer.Mandelbrot, cfg config.ShaderConfig) error {
	watcher, err := reload.New([]string{cfg.Vertex, cfg.Fragment}, reload.DefaultDebounce)
	if err != nil {
		return err
	}
	w.Go(func(ctx context.Context) {
		watcher.Run(ctx, func(path string) {
			slog.Info("mandelbrot: shader changed", "path", path)
			w.Post(func() {
				if err := m.Reload(); err == nil {
					slog.Info("mandelbrot: program reloaded")
				}
			})
		})
	})
	return nil
}
