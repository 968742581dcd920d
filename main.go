package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the command line flags that are not render settings
type options struct {
	configPath string
	watch      bool
	list       bool
}

// parseFlags reads the command line into cfg. Only flags that were set
// override the file and environment values already in cfg.
func parseFlags(args []string, stdout io.Writer) (config.Config, options, error) {
	var opts options
	var flagCfg config.Config

	fs := flag.NewFlagSet("whitted", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.configPath, "config", "", "TOML config file")
	fs.BoolVar(&opts.watch, "watch", false, "Re-render whenever the .toml scene file changes")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.StringVar(&flagCfg.Scene, "scene", "", "Built-in scene name or path to a .toml scene file")
	fs.StringVar(&flagCfg.SceneDir, "scene-dir", "", "Directory scanned for .toml scenes")
	fs.IntVar(&flagCfg.Width, "width", 0, "Image width in pixels (0 = scene camera)")
	fs.IntVar(&flagCfg.Height, "height", 0, "Image height in pixels (0 = scene camera)")
	fs.Float64Var(&flagCfg.FieldOfView, "fov", 0, "Field of view in degrees (0 = scene camera)")
	fs.IntVar(&flagCfg.MaxDepth, "max-depth", 0, "Reflection and refraction depth")
	fs.IntVar(&flagCfg.Workers, "workers", 0, "Parallel tile workers (0 = CPU count)")
	fs.IntVar(&flagCfg.TileSize, "tile-size", 0, "Tile edge in pixels")
	fs.StringVar(&flagCfg.Output, "output", "", "Output directory")
	fs.StringVar(&flagCfg.Format, "format", "", "Image format: ppm, png, bmp or tiff")
	fs.StringVar(&flagCfg.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintln(stdout, "Whitted Raytracer")
		fmt.Fprintln(stdout, "Usage: whitted [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Output will be saved to <output>/<scene>/render_<timestamp>.<format>")
	}

	if err := fs.Parse(args); err != nil {
		return config.Config{}, opts, err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, opts, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = flagCfg.Scene
		case "scene-dir":
			cfg.SceneDir = flagCfg.SceneDir
		case "width":
			cfg.Width = flagCfg.Width
		case "height":
			cfg.Height = flagCfg.Height
		case "fov":
			cfg.FieldOfView = flagCfg.FieldOfView
		case "max-depth":
			cfg.MaxDepth = flagCfg.MaxDepth
		case "workers":
			cfg.Workers = flagCfg.Workers
		case "tile-size":
			cfg.TileSize = flagCfg.TileSize
		case "output":
			cfg.Output = flagCfg.Output
		case "format":
			cfg.Format = flagCfg.Format
		case "log-level":
			cfg.LogLevel = flagCfg.LogLevel
		}
	})

	return cfg, opts, cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	logger, err := core.NewLogger(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	if opts.list {
		return listScenes(stdout, cfg.SceneDir)
	}

	s, err := scene.Load(cfg.Scene)
	if err != nil {
		return err
	}
	if _, err := renderScene(ctx, cfg, s, logger); err != nil {
		return err
	}

	if !opts.watch {
		return nil
	}
	if !strings.HasSuffix(cfg.Scene, ".toml") {
		return fmt.Errorf("-watch needs a .toml scene file, got %q", cfg.Scene)
	}
	return watchScene(ctx, cfg, logger)
}

// renderScene renders s with the configured camera overrides and saves it
func renderScene(ctx context.Context, cfg config.Config, s *scene.Scene, logger core.Logger) (string, error) {
	camera, err := renderer.NewCameraFromConfig(cfg.Camera(s.Camera))
	if err != nil {
		return "", err
	}

	logger.Infof("rendering %s (%d shapes) at %dx%d", s.Name, s.GetPrimitiveCount(), camera.HSize, camera.VSize)

	opts := cfg.RenderOptions()
	opts.Logger = logger
	canvas, stats, err := camera.RenderContext(ctx, s.World, opts)
	if err != nil {
		return "", err
	}
	logger.Infof("render completed in %v (%.0f pixels/s)", stats.Duration, stats.PixelsPerSecond())

	filename := outputPath(cfg, s.Name, time.Now())
	if err := canvas.Save(filename); err != nil {
		return "", err
	}
	logger.Infof("render saved as %s", filename)
	return filename, nil
}

// outputPath returns <output>/<scene>/render_<timestamp>.<format>
func outputPath(cfg config.Config, sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	dir := filepath.Join(cfg.Output, sanitizeName(sceneName))
	return filepath.Join(dir, fmt.Sprintf("render_%s.%s", timestamp, cfg.Format))
}

// sanitizeName keeps scene names usable as a single directory name
func sanitizeName(name string) string {
	name = strings.TrimSuffix(filepath.Base(name), ".toml")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "scene"
	}
	return name
}

func watchScene(ctx context.Context, cfg config.Config, logger core.Logger) error {
	w, err := scene.NewWatcher(cfg.Scene, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Infof("watching %s for changes", cfg.Scene)
	return w.Run(ctx, func(s *scene.Scene) {
		if _, err := renderScene(ctx, cfg, s, logger); err != nil {
			logger.Errorf("render %s: %v", s.Name, err)
		}
	})
}

func listScenes(w io.Writer, dir string) error {
	scenes, err := scene.ListScenes(dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scenes {
		desc := ""
		if info.Description != "" {
			desc = " - " + info.Description
		}
		fmt.Fprintf(w, "  %-20s %s%s\n", info.Name, info.DisplayName, desc)
	}
	return nil
}
