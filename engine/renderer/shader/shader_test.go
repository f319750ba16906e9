package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-quad/engine/model"
	"github.com/Carmen-Shannon/oxy-quad/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadSource = `
struct CameraUniform {
    view_proj: mat4x4<f32>,
};
@group(1) @binding(0)
var<uniform> camera: CameraUniform;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) tex_coords: vec2<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) tex_coords: vec2<f32>,
};

@vertex
fn vs_main(model: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.tex_coords = model.tex_coords;
    out.clip_position = camera.view_proj * vec4<f32>(model.position, 1.0);
    return out;
}

@group(0) @binding(0)
var t_diffuse: texture_2d<f32>;
@group(0) @binding(1)
var s_diffuse: sampler;

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(t_diffuse, s_diffuse, input.tex_coords);
}
`

func quadExpectations() []ShaderBuilderOption {
	uniform := bind_group_provider.UniformLayoutDescriptor()
	uniform.Entries[0].Buffer.MinBindingSize = 64
	return []ShaderBuilderOption{
		WithExpectedBindGroup(0, bind_group_provider.TextureLayoutDescriptor()),
		WithExpectedBindGroup(1, uniform),
		WithExpectedVertexLayout(model.VertexLayout()),
	}
}

func TestNewShaderAcceptsQuadSource(t *testing.T) {
	s, err := NewShader("quad", quadSource, quadExpectations()...)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", s.VertexEntryPoint())
	assert.Equal(t, "fs_main", s.FragmentEntryPoint())
	assert.Equal(t, "t_diffuse", s.BindGroupVarName(0, 0))
	assert.Equal(t, "s_diffuse", s.BindGroupVarName(0, 1))
	assert.Equal(t, "camera", s.BindGroupVarName(1, 0))
	assert.Len(t, s.BindGroupLayoutDescriptors(), 2)
	assert.Equal(t, uint64(64), s.BindGroupLayoutDescriptor(1).Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(model.VertexStride), s.VertexLayout().ArrayStride)

	require.NotNil(t, s.Module())
	assert.Equal(t, "quad", s.Module().Label)
	assert.Equal(t, quadSource, s.Module().WGSLDescriptor.Code)
}

func TestNewShaderRejections(t *testing.T) {
	tests := []struct {
		name   string
		source string
		reason string
	}{
		{
			name:   "empty",
			source: "   \n",
			reason: "parse",
		},
		{
			name:   "syntax error",
			source: "fn vs_main( {",
			reason: "",
		},
		{
			name:   "missing fragment entry",
			source: strings.Replace(quadSource, "fn fs_main", "fn frag", 1),
			reason: "missing @fragment fn fs_main",
		},
		{
			name:   "sampler at wrong binding",
			source: strings.Replace(quadSource, "@group(0) @binding(1)\nvar s_diffuse", "@group(0) @binding(2)\nvar s_diffuse", 1),
			reason: "bind group layout",
		},
		{
			name:   "uniform size mismatch",
			source: strings.Replace(quadSource, "view_proj: mat4x4<f32>,", "view_proj: mat4x4<f32>,\n    tint: vec4<f32>,", 1),
			reason: "bind group layout",
		},
		{
			name:   "vertex stride mismatch",
			source: strings.Replace(quadSource, "@location(1) tex_coords: vec2<f32>,\n};\n\nstruct VertexOutput", "@location(1) tex_coords: vec2<f32>,\n    @location(2) normal: vec3<f32>,\n};\n\nstruct VertexOutput", 1),
			reason: "vertex input",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShader("quad", tt.source, quadExpectations()...)

			var compileErr *CompileError
			require.ErrorAs(t, err, &compileErr)
			assert.Equal(t, "quad", compileErr.Key)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, compileErr.Reason)
			}
		})
	}
}

func TestNewShaderCustomEntryPoints(t *testing.T) {
	source := strings.NewReplacer("fn vs_main", "fn vert", "fn fs_main", "fn frag").Replace(quadSource)

	_, err := NewShader("quad", source)
	require.Error(t, err)

	s, err := NewShader("quad", source, WithVertexEntryPoint("vert"), WithFragmentEntryPoint("frag"))
	require.NoError(t, err)
	assert.Equal(t, "vert", s.VertexEntryPoint())
}

func TestLoadShader(t *testing.T) {
	s, err := LoadShader("quad", filepath.Join("..", "..", "..", "assets", "shader.wgsl"), quadExpectations()...)
	require.NoError(t, err)
	assert.Contains(t, s.Source(), "vs_main")

	_, err = LoadShader("flat", filepath.Join("..", "..", "..", "assets", "shader_flat.wgsl"),
		WithExpectedBindGroup(0, bind_group_provider.TextureLayoutDescriptor()),
		WithExpectedVertexLayout(model.VertexLayout()),
	)
	require.NoError(t, err)

	_, err = LoadShader("missing", filepath.Join(t.TempDir(), "nope.wgsl"))
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseVertexInputSkipsOutputStruct(t *testing.T) {
	layout, ok := parseVertexInput(stripComments(quadSource))
	require.True(t, ok)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout.Attributes[0].Format)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, layout.Attributes[1].Format)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)
}

func TestStripComments(t *testing.T) {
	src := "a // line\n/* block /* nested */ still */b"
	assert.Equal(t, "a \nb", stripComments(src))
}
