package model

// ModelBuilderOption is a functional option used to configure a Model during construction.
type ModelBuilderOption func(*model)

// WithVertices sets the model's vertices.
//
// Parameters:
//   - vertices: the vertices, copied into the model
//
// Returns:
//   - ModelBuilderOption: a function that sets the vertices
func WithVertices(vertices ...Vertex) ModelBuilderOption {
	return func(m *model) {
		m.vertices = append([]Vertex(nil), vertices...)
	}
}

// WithIndices sets the model's 16-bit indices.
//
// Parameters:
//   - indices: the indices, copied into the model
//
// Returns:
//   - ModelBuilderOption: a function that sets the indices
func WithIndices(indices ...uint16) ModelBuilderOption {
	return func(m *model) {
		m.indices = append([]uint16(nil), indices...)
	}
}
