// Package config loads the viewer settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"github.com/kjkrol/mandelgl/pkg/fractal"
	"github.com/kjkrol/mandelgl/pkg/gfx"
)

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Shader   ShaderConfig   `toml:"shader"`
	View     ViewConfig     `toml:"view"`
	Controls ControlsConfig `toml:"controls"`
	Palette  PaletteConfig  `toml:"palette"`
	Log      LogConfig      `toml:"log"`
}

type WindowConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	FPS        int    `toml:"fps"`
	VSync      bool   `toml:"vsync"`
	Resizable  bool   `toml:"resizable"`
	Fullscreen bool   `toml:"fullscreen"`
}

type ShaderConfig struct {
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
	// Watch recompiles the program whenever one of the files changes.
	Watch bool `toml:"watch"`
}

type ViewConfig struct {
	X             float32 `toml:"x"`
	Y             float32 `toml:"y"`
	Magnification float32 `toml:"magnification"`
	Iterations    int32   `toml:"iterations"`
}

type ControlsConfig struct {
	MinIterations    int32   `toml:"min_iterations"`
	MaxIterations    int32   `toml:"max_iterations"`
	MinMagnification float32 `toml:"min_magnification"`
}

// PaletteConfig selects an optional image used as a colour lookup table.
// An empty Path disables it.
type PaletteConfig struct {
	Path    string `toml:"path"`
	Unit    int32  `toml:"unit"`
	Sampler string `toml:"sampler"`
	Format  string `toml:"format"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:     1920,
			Height:    1080,
			Title:     "Mandelbrot fractal",
			FPS:       60,
			VSync:     true,
			Resizable: true,
		},
		Shader: ShaderConfig{
			Vertex:   "resources/shader/mandelbrot_vert.glsl",
			Fragment: "resources/shader/mandelbrot_frag.glsl",
		},
		View: ViewConfig{
			X:             -0.5,
			Y:             0,
			Magnification: 1,
			Iterations:    fractal.DefaultIterations,
		},
		Controls: ControlsConfig{
			MinIterations:    fractal.DefaultMinIterations,
			MaxIterations:    fractal.DefaultMaxIterations,
			MinMagnification: fractal.DefaultMinMag,
		},
		Palette: PaletteConfig{
			Sampler: "palette",
			Format:  "rgb",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default value; unknown keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return Config{}, fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf).SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPS <= 0 {
		errs = append(errs, fmt.Errorf("window fps must be positive, got %d", c.Window.FPS))
	}
	if c.Shader.Vertex == "" {
		errs = append(errs, errors.New("shader vertex path is empty"))
	}
	if c.Shader.Fragment == "" {
		errs = append(errs, errors.New("shader fragment path is empty"))
	}
	if c.Controls.MinIterations < 1 || c.Controls.MaxIterations < c.Controls.MinIterations {
		errs = append(errs, fmt.Errorf("iteration range [%d, %d] is invalid", c.Controls.MinIterations, c.Controls.MaxIterations))
	} else if c.View.Iterations < c.Controls.MinIterations || c.View.Iterations > c.Controls.MaxIterations {
		errs = append(errs, fmt.Errorf("view iterations %d outside [%d, %d]", c.View.Iterations, c.Controls.MinIterations, c.Controls.MaxIterations))
	}
	if c.Controls.MinMagnification <= 0 {
		errs = append(errs, fmt.Errorf("min magnification must be positive, got %g", c.Controls.MinMagnification))
	} else if c.View.Magnification < c.Controls.MinMagnification {
		errs = append(errs, fmt.Errorf("view magnification %g below minimum %g", c.View.Magnification, c.Controls.MinMagnification))
	}
	if c.Palette.Unit < 0 || c.Palette.Unit > 15 {
		errs = append(errs, fmt.Errorf("palette unit %d outside [0, 15]", c.Palette.Unit))
	}
	if _, err := c.Palette.ColorFormat(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (v ViewConfig) View() fractal.View {
	return fractal.View{Pos: mgl32.Vec2{v.X, v.Y}, Mag: v.Magnification, Iter: v.Iterations}
}

func (c ControlsConfig) Limits() fractal.Limits {
	return fractal.Limits{MinIter: c.MinIterations, MaxIter: c.MaxIterations, MinMag: c.MinMagnification}
}

func (p PaletteConfig) ColorFormat() (gfx.ColorFormat, error) {
	switch strings.ToLower(p.Format) {
	case "rgb":
		return gfx.RGB, nil
	case "rgba":
		return gfx.RGBA, nil
	default:
		return 0, fmt.Errorf("palette format %q is not rgb or rgba", p.Format)
	}
}

func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
