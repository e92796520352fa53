package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrUnknownVariable is returned when a named variable does not exist.
var ErrUnknownVariable = errors.New("config: unknown variable")

// Config is the full runtime configuration.
type Config struct {
	Overlay OverlayConfig `yaml:"overlay"`
	Camera  CameraConfig  `yaml:"camera"`
	Render  RenderConfig  `yaml:"render"`
	Window  WindowConfig  `yaml:"window"`
	Level   LevelConfig   `yaml:"level"`
}

// OverlayConfig toggles the ESP overlay class by class.
type OverlayConfig struct {
	Enabled       bool    `env:"LEGION_ESP" envDefault:"false" yaml:"enabled"`
	Box           bool    `env:"LEGION_ESP_BOX" envDefault:"true" yaml:"box"`
	Line          bool    `env:"LEGION_ESP_LINE" envDefault:"true" yaml:"line"`
	Label         bool    `env:"LEGION_ESP_NAME" envDefault:"true" yaml:"label"`
	BoxHalfExtent float32 `env:"LEGION_ESP_BOX_SIZE" envDefault:"20" yaml:"box_half_extent"`
}

// CameraConfig holds movement speed scalars in units per second.
type CameraConfig struct {
	ForwardSpeed  float32 `env:"LEGION_CAM_FORWARDSPEED" envDefault:"100" yaml:"forward_speed"`
	BackwardSpeed float32 `env:"LEGION_CAM_BACKWARDSPEED" envDefault:"100" yaml:"backward_speed"`
}

// RenderConfig holds world pass and presentation settings.
type RenderConfig struct {
	FOV      float32 `env:"LEGION_FOV" envDefault:"90" yaml:"fov"`
	VSync    bool    `env:"LEGION_VSYNC" envDefault:"true" yaml:"vsync"`
	Profile  bool    `env:"LEGION_PROFILE" envDefault:"false" yaml:"profile"`
	FPSLimit float64 `env:"LEGION_FPS_LIMIT" envDefault:"0" yaml:"fps_limit"`
}

// WindowConfig holds the initial window size and title.
type WindowConfig struct {
	Width  int    `env:"LEGION_WIDTH" envDefault:"1280" yaml:"width"`
	Height int    `env:"LEGION_HEIGHT" envDefault:"720" yaml:"height"`
	Title  string `env:"LEGION_TITLE" envDefault:"legion" yaml:"title"`
}

// LevelConfig holds level loading settings. An empty TerrainPath generates a flat heightfield.
type LevelConfig struct {
	TerrainPath   string  `env:"LEGION_TERRAIN" envDefault:"" yaml:"terrain_path"`
	TerrainCell   float32 `env:"LEGION_TERRAIN_CELL" envDefault:"32" yaml:"terrain_cell"`
	TerrainHeight float32 `env:"LEGION_TERRAIN_HEIGHT" envDefault:"64" yaml:"terrain_height"`
	TerrainSmooth float64 `env:"LEGION_TERRAIN_SMOOTH" envDefault:"0" yaml:"terrain_smooth"`
	LoadWorkers   int     `env:"LEGION_LOAD_WORKERS" envDefault:"2" yaml:"load_workers"`
}

// Source supplies the current configuration. Consumers call Config at every
// operation that depends on it instead of caching the result.
type Source interface {
	// Config returns a snapshot of the current configuration.
	//
	// Returns:
	//   - Config: the configuration
	Config() Config
}

type staticSource struct {
	cfg Config
}

// Static wraps a fixed Config as a Source.
//
// Parameters:
//   - cfg: the configuration to serve
//
// Returns:
//   - Source: a source that always returns cfg
func Static(cfg Config) Source {
	return staticSource{cfg: cfg}
}

func (s staticSource) Config() Config {
	return s.cfg
}

// Default returns the built-in defaults, ignoring the process environment.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return env.Must(env.ParseAsWithOptions[Config](env.Options{
		Environment: map[string]string{},
	}))
}

// Load builds a Config from defaults, then the optional YAML file at path, then the
// process environment. Later sources override earlier ones.
//
// Parameters:
//   - path: a YAML file to read; empty skips the file
//
// Returns:
//   - Config: the merged configuration
//   - error: if the file cannot be read or a value cannot be parsed
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// Defaults were applied above; only variables that are actually set may override the file.
	if err := env.ParseWithOptions(&cfg, env.Options{DefaultValueTagName: "envOverrideOnly"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
