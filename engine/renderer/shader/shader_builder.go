package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithVertexEntryPoint overrides the expected vertex entry function name.
//
// Parameters:
//   - name: the entry function name
//
// Returns:
//   - ShaderBuilderOption: a function that sets the vertex entry point
func WithVertexEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexEntry = name
	}
}

// WithFragmentEntryPoint overrides the expected fragment entry function name.
//
// Parameters:
//   - name: the entry function name
//
// Returns:
//   - ShaderBuilderOption: a function that sets the fragment entry point
func WithFragmentEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.fragmentEntry = name
	}
}

// WithExpectedBindGroup requires the source to declare every entry of desc in the given group.
//
// Parameters:
//   - group: the bind group index
//   - desc: the layout the pipeline will bind at that index
//
// Returns:
//   - ShaderBuilderOption: a function that records the expectation
func WithExpectedBindGroup(group int, desc wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.expectedGroups[group] = desc
	}
}

// WithExpectedVertexLayout requires the source's vertex input struct to match layout.
//
// Parameters:
//   - layout: the vertex buffer layout the pipeline will use
//
// Returns:
//   - ShaderBuilderOption: a function that records the expectation
func WithExpectedVertexLayout(layout wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.expectedVertex = &layout
	}
}
