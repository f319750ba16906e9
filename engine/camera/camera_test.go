package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-quad/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	x, y, z := c.Eye()
	assert.Equal(t, [3]float32{0, 1, 2}, [3]float32{x, y, z})
	x, y, z = c.Target()
	assert.Equal(t, [3]float32{0, 0, 0}, [3]float32{x, y, z})
	assert.InDelta(t, math.Pi/4, c.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
	assert.NotNil(t, c.BindGroupProvider())
}

func TestViewProjectionPutsTargetInFront(t *testing.T) {
	c := NewCamera(WithAspect(16.0 / 9.0))
	vp := c.ViewProjectionMatrix()

	clip := common.MulVec4(vp[:], [4]float32{0, 0, 0, 1})
	require.Greater(t, clip[3], float32(0))
	ndcX, ndcY, ndcZ := clip[0]/clip[3], clip[1]/clip[3], clip[2]/clip[3]
	assert.InDelta(t, 0, ndcX, 1e-5)
	assert.InDelta(t, 0, ndcY, 1e-5)
	assert.True(t, ndcZ > 0 && ndcZ < 1, "depth %f outside [0,1]", ndcZ)
}

func TestBuilderOverrides(t *testing.T) {
	c := NewCamera(WithUp(0, 0, 1), WithClipPlanes(0.5, 50), WithEye(0, -3, 0))

	x, y, z := c.Up()
	assert.Equal(t, [3]float32{0, 0, 1}, [3]float32{x, y, z})
	assert.Equal(t, float32(0.5), c.Near())
	assert.Equal(t, float32(50), c.Far())

	view := c.ViewMatrix()
	eye := common.MulVec4(view[:], [4]float32{0, -3, 0, 1})
	assert.InDelta(t, 0, eye[0], 1e-5)
	assert.InDelta(t, 0, eye[1], 1e-5)
	assert.InDelta(t, 0, eye[2], 1e-5)
}

func TestSettersUpdateMatrices(t *testing.T) {
	c := NewCamera()
	before := c.ViewProjectionMatrix()

	c.SetEye(0, 0, 4)
	c.SetTarget(0, 0, 1)
	c.SetFov(common.Radians(90))

	x, y, z := c.Eye()
	assert.Equal(t, [3]float32{0, 0, 4}, [3]float32{x, y, z})
	x, y, z = c.Target()
	assert.Equal(t, [3]float32{0, 0, 1}, [3]float32{x, y, z})
	assert.InDelta(t, math.Pi/2, c.Fov(), 1e-6)
	assert.NotEqual(t, before, c.ViewProjectionMatrix())

	vp := c.ViewProjectionMatrix()
	clip := common.MulVec4(vp[:], [4]float32{0, 0, 1, 1})
	require.Greater(t, clip[3], float32(0))
	assert.InDelta(t, 0, clip[0]/clip[3], 1e-5)
}

func TestMoveTranslatesEye(t *testing.T) {
	c := NewCamera()
	before := c.ViewProjectionMatrix()

	c.Move(1, 0, -0.5)

	x, y, z := c.Eye()
	assert.Equal(t, [3]float32{1, 1, 1.5}, [3]float32{x, y, z})
	assert.NotEqual(t, before, c.ViewProjectionMatrix())
}

func TestSetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera()
	c.SetAspect(2)
	c.SetAspect(0)
	c.SetAspect(-1)
	assert.Equal(t, float32(2), c.Aspect())
}

func TestUniformMarshal(t *testing.T) {
	c := NewCamera()
	u := c.Uniform()
	data := u.Marshal()

	require.Len(t, data, UniformSize)
	assert.Equal(t, UniformSize, u.Size())
	vp := c.ViewProjectionMatrix()
	for i := range 16 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		assert.Equal(t, vp[i], got)
	}
}
