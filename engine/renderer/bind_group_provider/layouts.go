package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

const (
	// TextureBinding is the binding index of the diffuse texture in the texture group.
	TextureBinding = 0
	// SamplerBinding is the binding index of the diffuse sampler in the texture group.
	SamplerBinding = 1
	// UniformBinding is the binding index of the camera uniform buffer in the uniform group.
	UniformBinding = 0
)

// TextureLayoutDescriptor describes the diffuse texture group: a filterable float 2D texture
// at binding 0 and a filtering sampler at binding 1, both visible to the fragment stage.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
func TextureLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "texture_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    TextureBinding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
					Multisampled:  false,
				},
			},
			{
				Binding:    SamplerBinding,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// UniformLayoutDescriptor describes the camera group: one uniform buffer at binding 0
// visible to the vertex stage, without a dynamic offset or minimum size.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
func UniformLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "camera_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    UniformBinding,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: false,
					MinBindingSize:   0,
				},
			},
		},
	}
}
