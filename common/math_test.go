package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMul4Identity(t *testing.T) {
	var id, out [16]float32
	Identity(id[:])
	m := [16]float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)

	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 0, 1, 2, 0, 0, 0, 0, 1, 0)

	eye := MulVec4(view[:], [4]float32{0, 1, 2, 1})
	assert.InDelta(t, 0, eye[0], 1e-5)
	assert.InDelta(t, 0, eye[1], 1e-5)
	assert.InDelta(t, 0, eye[2], 1e-5)

	// the target sits straight ahead on -Z
	target := MulVec4(view[:], [4]float32{0, 0, 0, 1})
	assert.InDelta(t, 0, target[0], 1e-5)
	assert.InDelta(t, 0, target[1], 1e-5)
	assert.Less(t, target[2], float32(0))
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], Radians(45), 1.5, 0.1, 100)

	near := MulVec4(proj[:], [4]float32{0, 0, -0.1, 1})
	far := MulVec4(proj[:], [4]float32{0, 0, -100, 1})

	assert.InDelta(t, 0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1, far[2]/far[3], 1e-4)
}

func TestWrapIndex(t *testing.T) {
	tests := []struct {
		index, step, n, want int
	}{
		{0, 1, 2, 1},
		{1, 1, 2, 0},
		{0, -1, 3, 2},
		{4, 0, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WrapIndex(tt.index, tt.step, tt.n))
	}
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce("", ""))
}
