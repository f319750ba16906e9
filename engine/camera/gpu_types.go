package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// UniformSize is the byte size of the camera uniform buffer.
const UniformSize = 64

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches `struct CameraUniform { view_proj: mat4x4<f32> }` in WGSL.
type GPUCameraUniform struct {
	ViewProj [16]float32 // offset 0: combined view-projection matrix, column-major
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform as little-endian float32 values in column-major order.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, v := range g.ViewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
