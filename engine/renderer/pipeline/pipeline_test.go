package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-quad/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("quad")

	assert.Equal(t, "quad", p.PipelineKey())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.Equal(t, model.VertexLayout().ArrayStride, p.VertexLayout().ArrayStride)
	assert.Nil(t, p.Shader())
	assert.Nil(t, p.RenderPipeline())

	blend := p.BlendState()
	for _, c := range []wgpu.BlendComponent{blend.Color, blend.Alpha} {
		assert.Equal(t, wgpu.BlendFactorOne, c.SrcFactor)
		assert.Equal(t, wgpu.BlendFactorZero, c.DstFactor)
		assert.Equal(t, wgpu.BlendOperationAdd, c.Operation)
	}
}

func TestNewPipelineOptions(t *testing.T) {
	p := NewPipeline("quad",
		WithCullMode(wgpu.CullModeNone),
		WithFrontFace(wgpu.FrontFaceCW),
		WithVertexLayout(wgpu.VertexBufferLayout{ArrayStride: 32}),
	)

	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, uint64(32), p.VertexLayout().ArrayStride)
	assert.NotPanics(t, p.Release)
}
