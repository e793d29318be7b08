package main

import (
	"github.com/urfave/cli/v2"

	"github.com/kjkrol/mandelgl/internal/config"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "TOML configuration file",
	}
	widthFlag = &cli.IntFlag{
		Name:  "width",
		Usage: "window width in pixels",
	}
	heightFlag = &cli.IntFlag{
		Name:  "height",
		Usage: "window height in pixels",
	}
	fullscreenFlag = &cli.BoolFlag{
		Name:  "fullscreen",
		Usage: "open the window on the primary monitor",
	}
	vertexFlag = &cli.StringFlag{
		Name:  "vertex",
		Usage: "vertex shader source",
	}
	fragmentFlag = &cli.StringFlag{
		Name:  "fragment",
		Usage: "fragment shader source",
	}
	paletteFlag = &cli.StringFlag{
		Name:  "palette",
		Usage: "image used as the colour palette (empty disables it)",
	}
	iterationsFlag = &cli.IntFlag{
		Name:  "iterations",
		Usage: "initial iteration count",
	}
	watchFlag = &cli.BoolFlag{
		Name:  "watch",
		Usage: "recompile the shaders when their files change",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "log level: debug, info, warn or error",
	}

	viewerFlags = []cli.Flag{
		configFlag,
		widthFlag,
		heightFlag,
		fullscreenFlag,
		vertexFlag,
		fragmentFlag,
		paletteFlag,
		iterationsFlag,
		watchFlag,
		verbosityFlag,
	}
)

// loadConfig reads the configuration file, if any, and applies the flags the
// user set on top of it.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	if ctx.IsSet(widthFlag.Name) {
		cfg.Window.Width = ctx.Int(widthFlag.Name)
	}
	if ctx.IsSet(heightFlag.Name) {
		cfg.Window.Height = ctx.Int(heightFlag.Name)
	}
	if ctx.IsSet(fullscreenFlag.Name) {
		cfg.Window.Fullscreen = ctx.Bool(fullscreenFlag.Name)
	}
	if ctx.IsSet(vertexFlag.Name) {
		cfg.Shader.Vertex = ctx.String(vertexFlag.Name)
	}
	if ctx.IsSet(fragmentFlag.Name) {
		cfg.Shader.Fragment = ctx.String(fragmentFlag.Name)
	}
	if ctx.IsSet(paletteFlag.Name) {
		cfg.Palette.Path = ctx.String(paletteFlag.Name)
	}
	if ctx.IsSet(iterationsFlag.Name) {
		cfg.View.Iterations = int32(ctx.Int(iterationsFlag.Name))
	}
	if ctx.IsSet(watchFlag.Name) {
		cfg.Shader.Watch = ctx.Bool(watchFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Log.Level = ctx.String(verbosityFlag.Name)
	}
	return cfg, cfg.Validate()
}
