package model

import (
	"encoding/binary"

	"github.com/Carmen-Shannon/oxy-quad/engine/renderer/bind_group_provider"
)

// quadVertices is the unit square centered at the origin in the XY plane.
// UVs are given in image space and flipped by NewVertex.
var quadVertices = []Vertex{
	NewVertex([3]float32{0.5, 0.5, 0.0}, [2]float32{1.0, 1.0}),
	NewVertex([3]float32{-0.5, 0.5, 0.0}, [2]float32{0.0, 1.0}),
	NewVertex([3]float32{-0.5, -0.5, 0.0}, [2]float32{0.0, 0.0}),
	NewVertex([3]float32{0.5, -0.5, 0.0}, [2]float32{1.0, 0.0}),
}

// quadIndices describes two counter-clockwise triangles covering the quad.
var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// model is the implementation of the Model interface.
type model struct {
	name         string
	vertices     []Vertex
	indices      []uint16
	meshProvider bind_group_provider.BindGroupProvider
}

// Model defines the interface for a static indexed mesh.
// A Model owns CPU-side vertex and index data, and once uploaded, the BindGroupProvider
// holding the GPU vertex and index buffers. Mesh data is immutable after construction.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices retrieves a copy of the model's vertices.
	//
	// Returns:
	//   - []Vertex: the vertices
	Vertices() []Vertex

	// Indices retrieves a copy of the model's 16-bit indices.
	//
	// Returns:
	//   - []uint16: the indices
	Indices() []uint16

	// VertexData serializes all vertices for GPU upload.
	//
	// Returns:
	//   - []byte: the packed vertex bytes
	VertexData() []byte

	// IndexData serializes all indices as little-endian uint16 for GPU upload.
	//
	// Returns:
	//   - []byte: the packed index bytes
	IndexData() []byte

	// IndexCount returns the number of indices, used for indexed draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	// Returns nil until the mesh has been uploaded by the renderer.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider or nil
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider stores the BindGroupProvider holding the uploaded GPU buffers.
	//
	// Parameters:
	//   - provider: the mesh provider
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)

	// Release releases the GPU mesh resources, if any.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model from the provided options.
//
// Parameters:
//   - name: the model identifier, also used for GPU debug labels
//   - options: functional options supplying vertices, indices and an optional provider
//
// Returns:
//   - Model: the new model
func NewModel(name string, options ...ModelBuilderOption) Model {
	m := &model{
		name: name,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Quad returns the fixed textured quad: 4 vertices and 6 indices forming two
// counter-clockwise triangles.
//
// Returns:
//   - Model: a new quad model without GPU resources
func Quad() Model {
	return NewModel("quad", WithVertices(quadVertices...), WithIndices(quadIndices...))
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []Vertex {
	out := make([]Vertex, len(m.vertices))
	copy(out, m.vertices)
	return out
}

func (m *model) Indices() []uint16 {
	out := make([]uint16, len(m.indices))
	copy(out, m.indices)
	return out
}

func (m *model) VertexData() []byte {
	buf := make([]byte, 0, len(m.vertices)*VertexStride)
	for i := range m.vertices {
		buf = append(buf, m.vertices[i].Marshal()...)
	}
	return buf
}

func (m *model) IndexData() []byte {
	// Buffer writes must be a multiple of 4 bytes, so an odd index count gets one
	// trailing zero index that is never drawn.
	size := len(m.indices) * 2
	size += size % 4
	buf := make([]byte, size)
	for i, idx := range m.indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}

func (m *model) Release() {
	if m.meshProvider != nil {
		m.meshProvider.Release()
		m.meshProvider = nil
	}
}
