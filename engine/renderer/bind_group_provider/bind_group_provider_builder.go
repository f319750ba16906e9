package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithTextureExtent records the pixel size of a texture binding up front.
//
// Parameters:
//   - binding: the binding index of the texture
//   - extent: the texture size
//
// Returns:
//   - BindGroupProviderOption: a function that records the extent
func WithTextureExtent(binding int, extent wgpu.Extent3D) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.extents[binding] = extent
	}
}

// WithIndexCount sets the index count of a mesh provider.
//
// Parameters:
//   - count: the number of indices to draw
//
// Returns:
//   - BindGroupProviderOption: a function that sets the index count
func WithIndexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.indexCount = count
	}
}
