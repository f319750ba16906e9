package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-quad/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfileInterval sets the time between profiler reports.
//
// Parameters:
//   - interval: the report interval (defaults to one second if <= 0)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfileInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = profiler.NewProfiler(interval)
	}
}

// WithTextureCycle sets the textures stepped through by the Space key. The renderer is
// expected to already show the cycle's current entry.
//
// Parameters:
//   - c: the texture cycle
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTextureCycle(c *TextureCycle) EngineBuilderOption {
	return func(e *engine) {
		if c != nil {
			e.cycle = c
		}
	}
}

// WithTextureCache sets the cache whose entries are dropped when a watched texture file changes.
//
// Parameters:
//   - c: the cache
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTextureCache(c Invalidator) EngineBuilderOption {
	return func(e *engine) {
		e.cache = c
	}
}

// WithCameraStep sets the distance one movement key press moves the camera.
//
// Parameters:
//   - step: the distance in world units
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCameraStep(step float32) EngineBuilderOption {
	return func(e *engine) {
		if step > 0 {
			e.cameraStep = step
		}
	}
}

// WithTextureWatch enables reloading the active texture when its file changes on disk.
//
// Parameters:
//   - enabled: if true, Run watches the directories of the cycle's textures
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTextureWatch(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.watch = enabled
	}
}
