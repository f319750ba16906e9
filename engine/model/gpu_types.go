package model

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// VertexStride is the size in bytes of one packed Vertex.
const VertexStride = 20

// Vertex is the GPU-aligned representation of a single quad vertex.
// Matches the WGSL VertexInput struct of the quad shader exactly.
// Size: 20 bytes, tightly packed, no padding.
type Vertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	TexCoord [2]float32 // offset 12: UV texture coordinate, V already flipped (8 bytes)
}

// NewVertex builds a Vertex from a position and an image-space UV.
// The V coordinate is stored as 1 - v so that image row 0 maps to the top of the quad.
//
// Parameters:
//   - position: the vertex position in model space
//   - uv: the texture coordinate with V pointing down the image
//
// Returns:
//   - Vertex: the packed vertex with the flipped V coordinate
func NewVertex(position [3]float32, uv [2]float32) Vertex {
	return Vertex{
		Position: position,
		TexCoord: [2]float32{uv[0], 1.0 - uv[1]},
	}
}

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes
func (v *Vertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the Vertex into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 20-byte little-endian buffer
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, VertexStride)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.TexCoord[1]))
	return buf
}

// VertexLayout describes how a buffer of packed Vertex values is read by the vertex stage:
// position at location 0 and texture coordinate at location 1, one buffer slot, per-vertex step.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for vertex buffer slot 0
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         wgpu.VertexFormatFloat32x2,
				Offset:         12,
				ShaderLocation: 1,
			},
		},
	}
}
