package renderer

import (
	"github.com/Carmen-Shannon/oxy-quad/common"
	"github.com/Carmen-Shannon/oxy-quad/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-quad/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. This is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// String returns the configuration name of the present mode.
//
// Returns:
//   - string: "vsync" or "uncapped"
func (m PresentMode) String() string {
	if m == PresentModeUncapped {
		return "uncapped"
	}
	return "vsync"
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

type wgpuRendererBackend interface {
	// ConfigureSurface (re)configures the surface for the given size. Called once at startup and
	// again whenever the window is resized or the surface is lost.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface reports no usable format
	ConfigureSurface(width, height int) error

	// SurfaceFormat returns the texture format the surface was configured with.
	//
	// Returns:
	//   - wgpu.TextureFormat: the surface format, or TextureFormatUndefined before configuration
	SurfaceFormat() wgpu.TextureFormat

	// SetPresentMode sets the present mode used by the next ConfigureSurface call.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the shader module, pipeline layout and render pipeline for p
	// and stores them on it. The layout binds the given bind group layouts in order.
	//
	// Parameters:
	//   - p: the pipeline holding a validated shader and fixed-function state
	//   - layouts: the bind group layouts, indexed by group
	//
	// Returns:
	//   - error: a *shader.CompileError if the device rejects the module, otherwise the device error
	RegisterRenderPipeline(p pipeline.Pipeline, layouts []*wgpu.BindGroupLayout) error

	// InitMeshBuffers creates the vertex and index buffers for a mesh and stores them on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created vertex and index buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU
	//   - indexCount: the number of indices represented in the indexData, used for draw calls
	//
	// Returns:
	//   - error: an error if the buffers could not be created, otherwise nil
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates a new bind group layout from descriptor, any buffers its entries need,
	// and the bind group itself, storing all of them on the provider. Texture and sampler entries
	// must already be initialized with InitTextureView and InitSampler.
	//
	// Parameters:
	//   - provider: the BindGroupProvider receiving the layout, buffers and bind group
	//   - descriptor: the BindGroupLayoutDescriptor describing the layout of the bind group
	//   - bufferSizeOverrides: buffer sizes keyed by binding, used instead of MinBindingSize (nil safe)
	//
	// Returns:
	//   - error: an error if any GPU object could not be created, otherwise nil
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error

	// InitTextureView creates a GPU texture from staging data, uploads its pixels and stores the
	// texture, its default view and its extent on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created texture on
	//   - bindingKey: the binding index of the texture entry
	//   - stagingData: the decoded RGBA8 pixels and dimensions
	//
	// Returns:
	//   - error: an error if the texture or view could not be created, otherwise nil
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a GPU sampler from staging data and stores it on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created sampler on
	//   - bindingKey: the binding index of the sampler entry
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if the sampler could not be created, otherwise nil
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	// Writes targeting a binding without a buffer are skipped.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture, creates a command encoder and begins a
	// render pass that clears the target to the given color. Must be paired with EndFrame.
	//
	// Parameters:
	//   - clear: the clear color of the pass
	//
	// Returns:
	//   - error: ErrSurfaceLost, ErrSurfaceOutOfMemory or an error wrapping ErrSurfaceOther
	BeginFrame(clear wgpu.Color) error

	// DrawCall encodes one indexed draw of the mesh within the current render pass.
	//
	// Parameters:
	//   - p: the pipeline to draw with
	//   - meshProvider: the BindGroupProvider holding vertex and index buffers
	//   - bindGroups: providers whose bind groups are set at indices 0..n-1
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame ends the current render pass and submits the command buffer to the queue.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the acquired surface texture and releases the frame's references.
	Present()

	// Release releases the device, queue, surface, adapter and instance.
	Release()
}
