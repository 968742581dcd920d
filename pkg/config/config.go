package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// EnvPrefix prefixes every environment override, e.g. WHITTED_WIDTH
const EnvPrefix = "WHITTED"

var ErrInvalidConfig = errors.New("invalid config")

// Config holds render settings shared by the CLI and the web server.
// Zero Width, Height and FieldOfView keep the scene's own camera values.
type Config struct {
	Width       int     `toml:"width" envconfig:"WIDTH"`
	Height      int     `toml:"height" envconfig:"HEIGHT"`
	FieldOfView float64 `toml:"fov" envconfig:"FOV"` // degrees
	MaxDepth    int     `toml:"max_depth" envconfig:"MAX_DEPTH"`
	Workers     int     `toml:"workers" envconfig:"WORKERS"` // 0 = CPU count
	TileSize    int     `toml:"tile_size" envconfig:"TILE_SIZE"`
	Scene       string  `toml:"scene" envconfig:"SCENE"`         // built-in name or .toml path
	SceneDir    string  `toml:"scene_dir" envconfig:"SCENE_DIR"` // scanned for .toml scenes
	Output      string  `toml:"output" envconfig:"OUTPUT"`       // output directory
	Format      string  `toml:"format" envconfig:"FORMAT"`       // ppm, png, bmp or tiff
	LogLevel    string  `toml:"log_level" envconfig:"LOG_LEVEL"`
	Addr        string  `toml:"addr" envconfig:"ADDR"` // web server listen address
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		MaxDepth: renderer.DefaultMaxDepth,
		TileSize: renderer.DefaultTileSize,
		Scene:    "default",
		SceneDir: "scenes",
		Output:   "output",
		Format:   string(renderer.FormatPNG),
		LogLevel: "info",
		Addr:     ":8080",
	}
}

// Load layers the defaults, an optional TOML file and the environment, then
// validates the result
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path, cfg); err != nil {
			return cfg, err
		}
	}
	cfg, err := FromEnv(cfg)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFile overlays the keys present in a TOML file onto base
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// FromEnv overlays WHITTED_* environment variables onto base. Unset
// variables leave the base value alone.
func FromEnv(base Config) (Config, error) {
	cfg := base
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return base, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks ranges and names
func (c Config) Validate() error {
	var errs []error
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("size must not be negative, got %dx%d", c.Width, c.Height))
	}
	if c.FieldOfView < 0 || c.FieldOfView >= 180 {
		errs = append(errs, fmt.Errorf("fov must be in [0, 180) degrees, got %v", c.FieldOfView))
	}
	if c.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth))
	}
	if c.TileSize < 1 {
		errs = append(errs, fmt.Errorf("tile_size must be at least 1, got %d", c.TileSize))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Scene == "" {
		errs = append(errs, errors.New("scene must be set"))
	}
	if _, err := renderer.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Camera applies the size and field-of-view overrides to a scene camera
func (c Config) Camera(cam scene.CameraConfig) scene.CameraConfig {
	if c.Width > 0 {
		cam.Width = c.Width
	}
	if c.Height > 0 {
		cam.Height = c.Height
	}
	if c.FieldOfView > 0 {
		cam.FieldOfView = c.FieldOfView * math.Pi / 180
	}
	return cam
}

// RenderOptions converts the worker settings for the renderer
func (c Config) RenderOptions() renderer.RenderOptions {
	return renderer.RenderOptions{
		Workers:  c.Workers,
		TileSize: c.TileSize,
		MaxDepth: c.MaxDepth,
	}
}
