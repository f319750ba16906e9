package pipeline

import (
	"github.com/Carmen-Shannon/oxy-quad/engine/model"
	"github.com/Carmen-Shannon/oxy-quad/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string
	shader      shader.Shader

	// vertexLayout describes vertex buffer slot 0.
	vertexLayout wgpu.VertexBufferLayout

	// GPU objects set by the backend's RegisterRenderPipeline.
	renderPipeline *wgpu.RenderPipeline
	pipelineLayout *wgpu.PipelineLayout
	module         *wgpu.ShaderModule

	cullMode   wgpu.CullMode
	topology   wgpu.PrimitiveTopology
	frontFace  wgpu.FrontFace
	writeMask  wgpu.ColorWriteMask
	blendState *wgpu.BlendState
}

// Pipeline holds the fixed-function state and shader of the quad render pipeline, and the GPU
// objects created from them. It never carries a depth/stencil state.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used as its GPU debug label.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader returns the validated shader providing the vertex and fragment stages.
	//
	// Returns:
	//   - shader.Shader: the shader, or nil if none was set
	Shader() shader.Shader

	// VertexLayout returns the layout of vertex buffer slot 0.
	//
	// Returns:
	//   - wgpu.VertexBufferLayout: the vertex buffer layout
	VertexLayout() wgpu.VertexBufferLayout

	// RenderPipeline returns the GPU render pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the render pipeline or nil
	RenderPipeline() *wgpu.RenderPipeline

	// CullMode returns the face culling mode.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order treated as front facing.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask of the single color target.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state of the single color target.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the GPU objects created for this pipeline.
	//
	// Parameters:
	//   - rp: the render pipeline
	//   - layout: the pipeline layout it was created with
	//   - module: the shader module it was created from
	SetRenderPipeline(rp *wgpu.RenderPipeline, layout *wgpu.PipelineLayout, module *wgpu.ShaderModule)

	// Release releases the GPU objects held by this pipeline. Safe to call more than once.
	Release()
}

var _ Pipeline = &pipeline{}

// ReplaceBlendState returns a blend state that writes the source color and alpha unchanged.
//
// Returns:
//   - *wgpu.BlendState: One/Zero/Add for both color and alpha
func ReplaceBlendState() *wgpu.BlendState {
	replace := wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorZero,
		Operation: wgpu.BlendOperationAdd,
	}
	return &wgpu.BlendState{Color: replace, Alpha: replace}
}

// NewPipeline creates the render pipeline description for the quad. Defaults are a triangle
// list with counter-clockwise front faces, back-face culling, REPLACE blending, all color
// channels written and the quad vertex layout.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:  pipelineKey,
		vertexLayout: model.VertexLayout(),
		cullMode:     wgpu.CullModeBack,
		topology:     wgpu.PrimitiveTopologyTriangleList,
		frontFace:    wgpu.FrontFaceCCW,
		writeMask:    wgpu.ColorWriteMaskAll,
		blendState:   ReplaceBlendState(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) VertexLayout() wgpu.VertexBufferLayout {
	return p.vertexLayout
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline, layout *wgpu.PipelineLayout, module *wgpu.ShaderModule) {
	p.renderPipeline = rp
	p.pipelineLayout = layout
	p.module = module
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
	if p.pipelineLayout != nil {
		p.pipelineLayout.Release()
		p.pipelineLayout = nil
	}
	if p.module != nil {
		p.module.Release()
		p.module = nil
	}
}
