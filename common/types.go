// package common contains common types that are used throughout this renderer. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds decoded RGBA8 pixel data for a texture binding pending GPU upload.
// Textures are decoded on the CPU into this form, validated, then handed to the renderer backend
// which creates the GPU texture and writes the pixels in a single upload.
type TextureStagingData struct {
	// Source identifies where the pixels came from (usually a file path). Used for labels and logs only.
	Source string
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// Extent returns the 3D extent of the staged texture with a single array layer.
//
// Returns:
//   - wgpu.Extent3D: the width, height and a depth of 1
func (t TextureStagingData) Extent() wgpu.Extent3D {
	return wgpu.Extent3D{
		Width:              t.Width,
		Height:             t.Height,
		DepthOrArrayLayers: 1,
	}
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero values fall back to the backend defaults when the sampler is created.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}
