// Package texture turns encoded images into RGBA8 staging data ready for a single GPU upload,
// and provides the loaders the renderer uses to resolve texture identifiers.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/Carmen-Shannon/oxy-quad/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned (wrapped in a DecodeError) when the bytes are not a recognised image container.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// supportedMIME lists the containers with a registered image decoder.
var supportedMIME = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

// Decode converts encoded image bytes to tightly packed, non-premultiplied RGBA8 staging data.
// The container is sniffed from its magic bytes before decoding, so file extensions are ignored.
//
// Parameters:
//   - source: an identifier for the image, used in errors and GPU labels
//   - data: the encoded image bytes
//
// Returns:
//   - common.TextureStagingData: the decoded pixels and dimensions
//   - error: a *DecodeError if the bytes cannot be decoded, or an *InvalidDimensionsError for an empty image
func Decode(source string, data []byte) (common.TextureStagingData, error) {
	kind, err := filetype.Image(data)
	if err != nil || !supportedMIME[kind.MIME.Value] {
		return common.TextureStagingData{}, &DecodeError{Source: source, Err: ErrUnsupportedFormat}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return common.TextureStagingData{}, &DecodeError{Source: source, Err: fmt.Errorf("%s: %w", kind.MIME.Value, err)}
	}

	// Straight alpha: the pipeline replaces rather than blends, so colors must not be premultiplied.
	bounds := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) || nrgba.Stride != 4*bounds.Dx() {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	staging := common.TextureStagingData{
		Source: source,
		Pixels: nrgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
	if err := Validate(staging); err != nil {
		return common.TextureStagingData{}, err
	}
	return staging, nil
}

// Validate checks that staging data can back a 2D RGBA8 texture.
//
// Parameters:
//   - staging: the staging data to check
//
// Returns:
//   - error: an *InvalidDimensionsError, or nil
func Validate(staging common.TextureStagingData) error {
	if staging.Width == 0 || staging.Height == 0 || len(staging.Pixels) != int(staging.Width)*int(staging.Height)*4 {
		return &InvalidDimensionsError{
			Source: staging.Source,
			Width:  staging.Width,
			Height: staging.Height,
			Bytes:  len(staging.Pixels),
		}
	}
	return nil
}

// DiffuseSampler returns the sampler settings used for the quad's diffuse texture:
// clamp-to-edge on every axis, linear magnification, nearest minification and mip selection.
//
// Returns:
//   - common.SamplerStagingData: the sampler configuration
func DiffuseSampler() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeNearest,
		MipmapFilter: wgpu.MipmapFilterModeNearest,
	}
}
