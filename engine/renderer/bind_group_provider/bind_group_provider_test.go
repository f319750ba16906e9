package bind_group_provider

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBindGroupProviderKeepsLabel(t *testing.T) {
	p := NewBindGroupProvider("diffuse")
	assert.Equal(t, "diffuse", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.TextureView(TextureBinding))
}

func TestTextureExtent(t *testing.T) {
	p := NewBindGroupProvider("diffuse", WithTextureExtent(TextureBinding, wgpu.Extent3D{Width: 4, Height: 2, DepthOrArrayLayers: 1}))

	e, ok := p.TextureExtent(TextureBinding)
	require.True(t, ok)
	assert.Equal(t, uint32(4), e.Width)
	assert.Equal(t, uint32(2), e.Height)

	_, ok = p.TextureExtent(SamplerBinding)
	assert.False(t, ok)

	p.SetTextureExtent(TextureBinding, wgpu.Extent3D{Width: 8, Height: 8, DepthOrArrayLayers: 1})
	e, _ = p.TextureExtent(TextureBinding)
	assert.Equal(t, uint32(8), e.Width)
}

func TestReleaseWithoutGPUHandles(t *testing.T) {
	p := NewBindGroupProvider("mesh", WithIndexCount(6))
	p.SetBuffer(UniformBinding, nil)
	p.SetTexture(TextureBinding, nil, nil)

	assert.NotPanics(t, p.Release)
	assert.NotPanics(t, p.Release)
	assert.Nil(t, p.Buffer(UniformBinding))
	assert.Nil(t, p.TextureView(TextureBinding))
	assert.Nil(t, p.Sampler(TextureBinding))
	assert.Equal(t, 6, p.IndexCount())
}

func TestTextureLayoutDescriptor(t *testing.T) {
	desc := TextureLayoutDescriptor()
	require.Len(t, desc.Entries, 2)

	tex := desc.Entries[0]
	assert.Equal(t, uint32(TextureBinding), tex.Binding)
	assert.Equal(t, wgpu.ShaderStageFragment, tex.Visibility)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, tex.Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, tex.Texture.ViewDimension)
	assert.False(t, tex.Texture.Multisampled)

	smp := desc.Entries[1]
	assert.Equal(t, uint32(SamplerBinding), smp.Binding)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, smp.Sampler.Type)
}

func TestUniformLayoutDescriptor(t *testing.T) {
	desc := UniformLayoutDescriptor()
	require.Len(t, desc.Entries, 1)

	e := desc.Entries[0]
	assert.Equal(t, wgpu.ShaderStageVertex, e.Visibility)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, e.Buffer.Type)
	assert.False(t, e.Buffer.HasDynamicOffset)
	assert.Zero(t, e.Buffer.MinBindingSize)
}
