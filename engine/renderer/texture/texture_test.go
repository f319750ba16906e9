package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/Carmen-Shannon/oxy-quad/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	staging, err := Decode("red.png", encodePNG(t, 3, 2))
	require.NoError(t, err)

	assert.Equal(t, uint32(3), staging.Width)
	assert.Equal(t, uint32(2), staging.Height)
	assert.Len(t, staging.Pixels, 3*2*4)
	assert.Equal(t, []byte{255, 0, 0, 255}, staging.Pixels[:4])
	assert.Equal(t, "red.png", staging.Source)
}

func TestDecodeKeepsStraightAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, G: 200, B: 100, A: 128})
	img.Set(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	staging, err := Decode("leaf.png", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 200, 100, 128}, staging.Pixels[:4])
	assert.Equal(t, []byte{10, 20, 30, 0}, staging.Pixels[4:8])
}

func TestDecodeConvertsWideAlphaToStraight(t *testing.T) {
	img := image.NewNRGBA64(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA64{R: 0xffff, G: 0xc8c8, B: 0x6464, A: 0x8080})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	staging, err := Decode("wide.png", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, staging.Pixels, 4)
	for i, want := range []byte{255, 200, 100, 128} {
		assert.InDelta(t, want, staging.Pixels[i], 1, "channel %d", i)
	}
}

func TestDecodeJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	staging, err := Decode("tree.jpg", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint32(8), staging.Width)
	assert.Equal(t, uint32(4), staging.Height)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("notes.txt", []byte("definitely not an image"))

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "notes.txt", decodeErr.Source)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeRejectsTruncatedPNG(t *testing.T) {
	data := encodePNG(t, 4, 4)
	_, err := Decode("cut.png", data[:len(data)/2])

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		staging common.TextureStagingData
		wantErr bool
	}{
		{"valid", common.TextureStagingData{Width: 2, Height: 1, Pixels: make([]byte, 8)}, false},
		{"zero width", common.TextureStagingData{Width: 0, Height: 4, Pixels: nil}, true},
		{"zero height", common.TextureStagingData{Width: 4, Height: 0, Pixels: nil}, true},
		{"short buffer", common.TextureStagingData{Width: 2, Height: 2, Pixels: make([]byte, 8)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.staging)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var dimErr *InvalidDimensionsError
			assert.ErrorAs(t, err, &dimErr)
		})
	}
}

func TestDiffuseSampler(t *testing.T) {
	s := DiffuseSampler()
	assert.Equal(t, wgpu.AddressModeClampToEdge, s.AddressModeU)
	assert.Equal(t, wgpu.AddressModeClampToEdge, s.AddressModeV)
	assert.Equal(t, wgpu.AddressModeClampToEdge, s.AddressModeW)
	assert.Equal(t, wgpu.FilterModeLinear, s.MagFilter)
	assert.Equal(t, wgpu.FilterModeNearest, s.MinFilter)
	assert.Equal(t, wgpu.MipmapFilterModeNearest, s.MipmapFilter)
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 5, 7), 0o644))

	staging, err := NewFileLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), staging.Width)
	assert.Equal(t, uint32(7), staging.Height)

	_, err = NewFileLoader().Load(filepath.Join(dir, "missing.png"))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCacheMemoizes(t *testing.T) {
	var calls atomic.Int32
	inner := LoaderFunc(func(id string) (common.TextureStagingData, error) {
		calls.Add(1)
		return common.TextureStagingData{Source: id, Width: 1, Height: 1, Pixels: make([]byte, 4)}, nil
	})
	c := NewCache(inner)

	_, err := c.Load("a")
	require.NoError(t, err)
	_, err = c.Load("a")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	c.Invalidate("a")
	assert.False(t, c.Cached("a"))
	_, err = c.Load("a")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCachePreload(t *testing.T) {
	inner := LoaderFunc(func(id string) (common.TextureStagingData, error) {
		if id == "bad" {
			return common.TextureStagingData{}, &DecodeError{Source: id, Err: ErrUnsupportedFormat}
		}
		return common.TextureStagingData{Source: id, Width: 1, Height: 1, Pixels: make([]byte, 4)}, nil
	})
	c := NewCache(inner)

	failures := c.Preload([]string{"a", "bad", "b"}, nil)

	require.Len(t, failures, 1)
	assert.Contains(t, failures, "bad")
	assert.True(t, c.Cached("a"))
	assert.True(t, c.Cached("b"))
	assert.False(t, c.Cached("bad"))
}
