package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, [3]float64{0.1, 0.2, 0.3}, cfg.Renderer.ClearColor)
	assert.Equal(t, "assets/shader.wgsl", cfg.Shader)
	assert.Len(t, cfg.Textures, 2)
	assert.True(t, cfg.Camera.Enabled)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "quad.toml", `
textures = ["a.png", "b.jpg", "c.png"]
log_level = "debug"

[window]
width = 640
height = 480

[renderer]
clear_color = [1.0, 0.0, 0.0]
present_mode = "uncapped"

[camera]
enabled = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.png", "b.jpg", "c.png"}, cfg.Textures)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, "oxy-quad", cfg.Window.Title)
	assert.Equal(t, [3]float64{1, 0, 0}, cfg.Renderer.ClearColor)
	assert.Equal(t, "uncapped", cfg.Renderer.PresentMode)
	assert.False(t, cfg.Camera.Enabled)
	assert.Equal(t, float32(45), cfg.Camera.Fov)
	assert.True(t, cfg.Console)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "quad.yml", `
shader: shaders/flat.wgsl
watch: false
camera:
  eye: [0, 0, 3]
  up: [0, 0, 1]
  far: 20
  step: 0.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "shaders/flat.wgsl", cfg.Shader)
	assert.False(t, cfg.Watch)
	assert.Equal(t, [3]float32{0, 0, 3}, cfg.Camera.Eye)
	assert.Equal(t, float32(0.5), cfg.Camera.Step)
	assert.Equal(t, [3]float32{0, 0, 1}, cfg.Camera.Up)
	assert.Equal(t, float32(0.1), cfg.Camera.Near)
	assert.Equal(t, float32(20), cfg.Camera.Far)
	assert.Equal(t, Default().Textures, cfg.Textures)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "quad.ini", "x=1"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(writeFile(t, "quad.toml", "textures = ["))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "quad.toml", "textures = []"))
	assert.ErrorContains(t, err, "at least one texture")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty shader", func(c *Config) { c.Shader = " " }, "shader path"},
		{"blank texture", func(c *Config) { c.Textures = []string{""} }, "empty path"},
		{"bad present mode", func(c *Config) { c.Renderer.PresentMode = "mailbox" }, "present mode"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
		{"clear color range", func(c *Config) { c.Renderer.ClearColor[2] = 2 }, "clear color"},
		{"zero window", func(c *Config) { c.Window.Height = 0 }, "window size"},
		{"fov", func(c *Config) { c.Camera.Fov = 0 }, "fov"},
		{"near plane", func(c *Config) { c.Camera.Near = 0 }, "clip planes"},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }, "clip planes"},
		{"zero up", func(c *Config) { c.Camera.Up = [3]float32{} }, "up vector"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestExpandPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg := Default()
	cfg.Shader = "~/quad.wgsl"
	cfg.Textures = []string{"~/a.png", "b.png"}

	require.NoError(t, cfg.ExpandPaths())
	assert.Equal(t, filepath.Join(home, "quad.wgsl"), cfg.Shader)
	assert.Equal(t, filepath.Join(home, "a.png"), cfg.Textures[0])
	assert.Equal(t, "b.png", cfg.Textures[1])
}
