// Package config loads the quadview settings from a TOML or YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by Load for files that are neither TOML nor YAML.
var ErrUnknownFormat = errors.New("unknown config format")

// Config holds every setting of the quad viewer.
type Config struct {
	Window   WindowConfig   `toml:"window" yaml:"window"`
	Renderer RendererConfig `toml:"renderer" yaml:"renderer"`
	Camera   CameraConfig   `toml:"camera" yaml:"camera"`

	// Textures is the cycle of images; the first one is shown at startup.
	Textures []string `toml:"textures" yaml:"textures"`
	// Shader is the WGSL file drawn with.
	Shader string `toml:"shader" yaml:"shader"`

	Console  bool   `toml:"console" yaml:"console"`
	Watch    bool   `toml:"watch" yaml:"watch"`
	Profiler bool   `toml:"profiler" yaml:"profiler"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
}

// RendererConfig holds the GPU settings.
type RendererConfig struct {
	// ClearColor is the initial background color as RGB in [0, 1].
	ClearColor [3]float64 `toml:"clear_color" yaml:"clear_color"`
	// PresentMode is "vsync" or "uncapped".
	PresentMode   string `toml:"present_mode" yaml:"present_mode"`
	ForceSoftware bool   `toml:"force_software" yaml:"force_software"`
}

// CameraConfig holds the camera settings. When Enabled is false the shader must not declare
// the camera group.
type CameraConfig struct {
	Enabled bool       `toml:"enabled" yaml:"enabled"`
	Eye     [3]float32 `toml:"eye" yaml:"eye"`
	Target  [3]float32 `toml:"target" yaml:"target"`
	Up      [3]float32 `toml:"up" yaml:"up"`
	// Near and Far are the clip plane distances.
	Near float32 `toml:"near" yaml:"near"`
	Far  float32 `toml:"far" yaml:"far"`
	// Fov is the vertical field of view in degrees.
	Fov float32 `toml:"fov" yaml:"fov"`
	// Step is the distance one movement key press moves the eye.
	Step float32 `toml:"step" yaml:"step"`
}

// Default returns the built-in settings.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-quad",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			ClearColor:  [3]float64{0.1, 0.2, 0.3},
			PresentMode: "vsync",
		},
		Camera: CameraConfig{
			Enabled: true,
			Eye:     [3]float32{0, 1, 2},
			Target:  [3]float32{0, 0, 0},
			Up:      [3]float32{0, 1, 0},
			Near:    0.1,
			Far:     100,
			Fov:     45,
			Step:    0.1,
		},
		Textures: []string{"assets/happy-tree.png", "assets/sakura-trees.png"},
		Shader:   "assets/shader.wgsl",
		Console:  true,
		Watch:    true,
		Profiler: false,
		LogLevel: "info",
	}
}

// Load reads a configuration file over the defaults. The format is chosen by extension:
// .toml, or .yaml and .yml. Keys missing from the file keep their default value.
//
// Parameters:
//   - path: the file to read; a leading ~ is expanded
//
// Returns:
//   - Config: the merged and validated configuration
//   - error: a read, parse or validation error
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expand config path %q: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(filepath.Ext(expanded), data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.ExpandPaths(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode unmarshals data into cfg using the format named by ext.
//
// Parameters:
//   - ext: the file extension including the dot
//   - data: the file contents
//   - cfg: the configuration to fill
//
// Returns:
//   - error: ErrUnknownFormat or the decoder's error
func Decode(ext string, data []byte, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// ExpandPaths replaces a leading ~ in the shader and texture paths with the home directory.
//
// Returns:
//   - error: an error if the home directory cannot be determined
func (c *Config) ExpandPaths() error {
	shader, err := homedir.Expand(c.Shader)
	if err != nil {
		return fmt.Errorf("expand shader path: %w", err)
	}
	c.Shader = shader
	for i, t := range c.Textures {
		expanded, err := homedir.Expand(t)
		if err != nil {
			return fmt.Errorf("expand texture path %q: %w", t, err)
		}
		c.Textures[i] = expanded
	}
	return nil
}

// Validate checks that the configuration can start the viewer.
//
// Returns:
//   - error: the first problem found, or nil
func (c *Config) Validate() error {
	var errs []error
	if len(c.Textures) == 0 {
		errs = append(errs, errors.New("at least one texture is required"))
	}
	for i, t := range c.Textures {
		if strings.TrimSpace(t) == "" {
			errs = append(errs, fmt.Errorf("texture %d has an empty path", i))
		}
	}
	if strings.TrimSpace(c.Shader) == "" {
		errs = append(errs, errors.New("shader path is required"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	switch strings.ToLower(c.Renderer.PresentMode) {
	case "vsync", "uncapped":
	default:
		errs = append(errs, fmt.Errorf("present mode %q is not vsync or uncapped", c.Renderer.PresentMode))
	}
	for i, v := range c.Renderer.ClearColor {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("clear color component %d is %v, outside [0, 1]", i, v))
		}
	}
	if c.Camera.Enabled && (c.Camera.Fov <= 0 || c.Camera.Fov >= 180) {
		errs = append(errs, fmt.Errorf("camera fov %v must be in (0, 180)", c.Camera.Fov))
	}
	if c.Camera.Enabled && (c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near) {
		errs = append(errs, fmt.Errorf("camera clip planes %v..%v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Enabled && c.Camera.Up == ([3]float32{}) {
		errs = append(errs, errors.New("camera up vector must be non-zero"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel.
//
// Returns:
//   - slog.Level: the level
//   - error: an error for names other than debug, info, warn and error
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
