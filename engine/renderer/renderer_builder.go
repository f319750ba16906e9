package renderer

import (
	"github.com/Carmen-Shannon/oxy-quad/engine/camera"
	"github.com/Carmen-Shannon/oxy-quad/engine/renderer/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithCamera enables the camera uniform at bind group 1. The shader must then declare it.
//
// Parameters:
//   - c: the camera whose view-projection matrix is uploaded
//
// Returns:
//   - RendererBuilderOption: a function that attaches the camera to a renderer
func WithCamera(c camera.Camera) RendererBuilderOption {
	return func(r *renderer) {
		r.camera = c
	}
}

// WithBackgroundColor sets the initial clear color. Alpha is forced to 1.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that sets the clear color
func WithBackgroundColor(c wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.background = c
	}
}

// WithTextureLoader replaces the loader used to resolve texture identifiers. The default reads and
// decodes files on every call; pass a *texture.Cache to reuse decoded images.
//
// Parameters:
//   - loader: the texture loader
//
// Returns:
//   - RendererBuilderOption: a function that sets the loader
func WithTextureLoader(loader texture.Loader) RendererBuilderOption {
	return func(r *renderer) {
		if loader != nil {
			r.loader = loader
		}
	}
}

// WithShaderSource supplies WGSL source directly, in which case the shader path is ignored.
//
// Parameters:
//   - source: the WGSL source text
//
// Returns:
//   - RendererBuilderOption: a function that sets the shader source
func WithShaderSource(source string) RendererBuilderOption {
	return func(r *renderer) {
		r.shaderSource = &source
	}
}

// withBackend injects an already created backend, skipping device acquisition.
func withBackend(b RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = b
	}
}
