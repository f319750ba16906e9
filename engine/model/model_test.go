package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVertexFlipsV(t *testing.T) {
	uvs := [][2]float32{{0, 0}, {1, 1}, {0.25, 0.75}, {0.5, 0.1}}
	for _, uv := range uvs {
		v := NewVertex([3]float32{1, 2, 3}, uv)
		assert.Equal(t, uv[0], v.TexCoord[0])
		assert.InDelta(t, 1-uv[1], v.TexCoord[1], 1e-7)
		assert.Equal(t, [3]float32{1, 2, 3}, v.Position)
	}
}

func TestVertexMarshal(t *testing.T) {
	v := NewVertex([3]float32{0.5, -0.5, 0}, [2]float32{1, 0})
	buf := v.Marshal()
	require.Len(t, buf, VertexStride)
	assert.Equal(t, VertexStride, v.Size())

	read := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	assert.Equal(t, float32(0.5), read(0))
	assert.Equal(t, float32(-0.5), read(4))
	assert.Equal(t, float32(1), read(12))
	assert.Equal(t, float32(1), read(16))
}

func TestQuadIndicesInRange(t *testing.T) {
	q := Quad()
	require.Len(t, q.Vertices(), 4)
	require.Equal(t, 6, q.IndexCount())
	for _, idx := range q.Indices() {
		assert.Less(t, int(idx), len(q.Vertices()))
	}
}

func TestQuadWindingIsCounterClockwise(t *testing.T) {
	q := Quad()
	verts := q.Vertices()
	idx := q.Indices()
	for tri := 0; tri < len(idx); tri += 3 {
		a := verts[idx[tri]].Position
		b := verts[idx[tri+1]].Position
		c := verts[idx[tri+2]].Position
		// z of (b-a) x (c-a), viewed from +Z looking down -Z
		cross := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
		assert.Greater(t, cross, float32(0), "triangle %d", tri/3)
	}
}

func TestQuadBuffers(t *testing.T) {
	q := Quad()
	assert.Len(t, q.VertexData(), 4*VertexStride)

	data := q.IndexData()
	require.Len(t, data, 12)
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(data[4:]))
	assert.Equal(t, uint16(3), binary.LittleEndian.Uint16(data[10:]))
}

func TestIndexDataPadsToFourBytes(t *testing.T) {
	m := NewModel("tri", WithIndices(0, 1, 2))
	assert.Len(t, m.IndexData(), 8)
}

func TestVertexLayout(t *testing.T) {
	layout := VertexLayout()
	assert.Equal(t, uint64(VertexStride), layout.ArrayStride)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout.Attributes[0].Format)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)
	assert.Equal(t, uint32(1), layout.Attributes[1].ShaderLocation)
}
