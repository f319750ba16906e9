// Package shader loads and validates the WGSL program of the quad pipeline.
package shader

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-quad/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
	"github.com/mitchellh/go-homedir"
)

const (
	// DefaultVertexEntryPoint is the vertex stage entry point expected unless overridden.
	DefaultVertexEntryPoint = "vs_main"
	// DefaultFragmentEntryPoint is the fragment stage entry point expected unless overridden.
	DefaultFragmentEntryPoint = "fs_main"
)

// ErrEmptySource is the cause of a CompileError for blank WGSL text.
var ErrEmptySource = errors.New("empty WGSL source")

// shader is the implementation of the Shader interface.
type shader struct {
	key           string
	source        string
	vertexEntry   string
	fragmentEntry string

	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayout               wgpu.VertexBufferLayout
	module                     *wgpu.ShaderModuleDescriptor

	// expectations checked by validate
	expectedGroups map[int]wgpu.BindGroupLayoutDescriptor
	expectedVertex *wgpu.VertexBufferLayout
}

// Shader is a validated WGSL program with one vertex and one fragment entry point. It exposes
// what the renderer needs to build the render pipeline and what it parsed from the source.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as its GPU debug label.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// VertexEntryPoint returns the name of the vertex stage entry function.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the fragment stage entry function.
	//
	// Returns:
	//   - string: the entry point name (e.g. "fs_main")
	FragmentEntryPoint() string

	// BindGroupLayoutDescriptor retrieves the descriptor parsed for one bind group.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the parsed descriptor, or an empty descriptor if the group is not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves every parsed bind group descriptor keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the WGSL variable name bound at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if not declared
	BindGroupVarName(group, binding int) string

	// VertexLayout returns the vertex buffer layout parsed from the vertex input struct.
	//
	// Returns:
	//   - wgpu.VertexBufferLayout: the packed layout of the vertex input
	VertexLayout() wgpu.VertexBufferLayout

	// Module returns the descriptor used to create the GPU shader module.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the module descriptor with the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader validates WGSL source and returns the resulting Shader.
// The source must parse and lower as WGSL, declare both entry points, and match any
// expected bind groups and vertex layout passed as options.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - source: the WGSL source text
//   - options: a variadic list of options configuring expectations
//
// Returns:
//   - Shader: the validated shader
//   - error: a *CompileError describing the first failed check
func NewShader(key, source string, options ...ShaderBuilderOption) (Shader, error) {
	s := &shader{
		key:            key,
		source:         source,
		vertexEntry:    DefaultVertexEntryPoint,
		fragmentEntry:  DefaultFragmentEntryPoint,
		expectedGroups: make(map[int]wgpu.BindGroupLayoutDescriptor),
	}
	for _, opt := range options {
		opt(s)
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadShader reads WGSL source from a file and validates it with NewShader.
// A leading ~ in path is expanded to the user's home directory.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - path: the WGSL file path
//   - options: a variadic list of options configuring expectations
//
// Returns:
//   - Shader: the validated shader
//   - error: a *CompileError if the file cannot be read or fails validation
func LoadShader(key, path string, options ...ShaderBuilderOption) (Shader, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, &CompileError{Key: key, Reason: "read source", Err: err}
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, &CompileError{Key: key, Reason: "read source", Err: err}
	}
	return NewShader(key, string(data), options...)
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	return s.bindingVarNames[group][binding]
}

func (s *shader) VertexLayout() wgpu.VertexBufferLayout {
	return s.vertexLayout
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

// compile runs the WGSL front end over the source, reflects its interface and checks it
// against the configured expectations.
func (s *shader) compile() error {
	if strings.TrimSpace(s.source) == "" {
		return &CompileError{Key: s.key, Reason: "parse", Err: ErrEmptySource}
	}

	ast, err := naga.Parse(s.source)
	if err != nil {
		return &CompileError{Key: s.key, Reason: "parse", Err: err}
	}
	ir, err := naga.Lower(ast)
	if err != nil {
		return &CompileError{Key: s.key, Reason: "lower", Err: err}
	}
	common.Logger().Debug("shader lowered",
		"key", s.key,
		"entry_points", len(ir.EntryPoints),
		"globals", len(ir.GlobalVariables),
	)

	cleaned := stripComments(s.source)
	if !slices.Contains(parseEntryPoints(cleaned, wgpu.ShaderStageVertex), s.vertexEntry) {
		return &CompileError{Key: s.key, Reason: fmt.Sprintf("missing @vertex fn %s", s.vertexEntry)}
	}
	if !slices.Contains(parseEntryPoints(cleaned, wgpu.ShaderStageFragment), s.fragmentEntry) {
		return &CompileError{Key: s.key, Reason: fmt.Sprintf("missing @fragment fn %s", s.fragmentEntry)}
	}

	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(cleaned)
	for group, want := range s.expectedGroups {
		if err := matchBindGroup(group, want, s.bindGroupLayoutDescriptors[group]); err != nil {
			return &CompileError{Key: s.key, Reason: "bind group layout", Err: err}
		}
	}

	layout, ok := parseVertexInput(cleaned)
	if s.expectedVertex != nil {
		if !ok {
			return &CompileError{Key: s.key, Reason: "vertex input", Err: errors.New("no @location vertex input struct")}
		}
		if err := matchVertexLayout(*s.expectedVertex, layout); err != nil {
			return &CompileError{Key: s.key, Reason: "vertex input", Err: err}
		}
	}
	s.vertexLayout = layout

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return nil
}

// matchBindGroup checks that every expected entry is declared with the same resource kind.
// Visibility is not compared. A non-zero expected MinBindingSize must equal the parsed size.
func matchBindGroup(group int, want, got wgpu.BindGroupLayoutDescriptor) error {
	for _, w := range want.Entries {
		idx := slices.IndexFunc(got.Entries, func(e wgpu.BindGroupLayoutEntry) bool { return e.Binding == w.Binding })
		if idx < 0 {
			return fmt.Errorf("@group(%d) @binding(%d) is not declared", group, w.Binding)
		}
		g := got.Entries[idx]
		switch {
		case w.Buffer.Type != wgpu.BufferBindingTypeUndefined:
			if g.Buffer.Type != w.Buffer.Type {
				return fmt.Errorf("@group(%d) @binding(%d): expected buffer type %v, got %v", group, w.Binding, w.Buffer.Type, g.Buffer.Type)
			}
			if w.Buffer.MinBindingSize != 0 && g.Buffer.MinBindingSize != w.Buffer.MinBindingSize {
				return fmt.Errorf("@group(%d) @binding(%d): expected %d bytes, got %d", group, w.Binding, w.Buffer.MinBindingSize, g.Buffer.MinBindingSize)
			}
		case w.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			if g.Sampler.Type != w.Sampler.Type {
				return fmt.Errorf("@group(%d) @binding(%d): expected a sampler", group, w.Binding)
			}
		case w.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			if g.Texture.SampleType != w.Texture.SampleType || g.Texture.ViewDimension != w.Texture.ViewDimension || g.Texture.Multisampled != w.Texture.Multisampled {
				return fmt.Errorf("@group(%d) @binding(%d): texture type mismatch", group, w.Binding)
			}
		}
	}
	return nil
}

// matchVertexLayout checks that the shader's vertex input reads the same formats, at the same
// locations and offsets, as the vertex buffer provides.
func matchVertexLayout(want, got wgpu.VertexBufferLayout) error {
	if want.ArrayStride != got.ArrayStride {
		return fmt.Errorf("expected stride %d, got %d", want.ArrayStride, got.ArrayStride)
	}
	for _, w := range want.Attributes {
		idx := slices.IndexFunc(got.Attributes, func(a wgpu.VertexAttribute) bool { return a.ShaderLocation == w.ShaderLocation })
		if idx < 0 {
			return fmt.Errorf("@location(%d) is not declared", w.ShaderLocation)
		}
		if g := got.Attributes[idx]; g.Format != w.Format || g.Offset != w.Offset {
			return fmt.Errorf("@location(%d): expected %v at offset %d, got %v at offset %d", w.ShaderLocation, w.Format, w.Offset, g.Format, g.Offset)
		}
	}
	return nil
}
