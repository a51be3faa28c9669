package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func vecNear(a, b r3.Vec, eps float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= eps
}

func TestRot_AxisAligned(t *testing.T) {
	rotZ90 := mat.NewDense(3, 3, []float64{0, -1, 0, 1, 0, 0, 0, 0, 1})
	if got := Rot(r3.Vec{Z: math.Pi / 2}); !mat.EqualApprox(got, rotZ90, tol) {
		t.Errorf("Rot(z π/2) = %v, want %v", mat.Formatted(got), mat.Formatted(rotZ90))
	}

	rotX90 := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 0, -1, 0, 1, 0})
	if got := Rot(r3.Vec{X: math.Pi / 2}); !mat.EqualApprox(got, rotX90, tol) {
		t.Errorf("Rot(x π/2) = %v, want %v", mat.Formatted(got), mat.Formatted(rotX90))
	}

	if got := Rot(r3.Vec{}); !mat.EqualApprox(got, eye3(), 0) {
		t.Errorf("Rot(0) = %v, want identity", mat.Formatted(got))
	}
}

func TestRot_IsProperRotation(t *testing.T) {
	vecs := []r3.Vec{
		{},
		{X: 0.3, Y: -1.2, Z: 0.7},
		{X: 3, Y: 0, Z: 0},
		{X: -2, Y: 2, Z: 2},
		{X: 1e-14, Y: 0, Z: -1e-14},
	}
	for _, v := range vecs {
		if !IsRotationMatrix(Rot(v)) {
			t.Errorf("Rot(%v) is not a proper rotation", v)
		}
	}
}

func TestRot2Vec_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    r3.Vec
	}{
		{"zero", r3.Vec{}},
		{"tiny", r3.Vec{X: 1e-13, Y: -2e-13, Z: 5e-14}},
		{"yaw quarter turn", r3.Vec{Z: math.Pi / 2}},
		{"negative yaw", r3.Vec{Z: -math.Pi / 2}},
		{"oblique", r3.Vec{X: 0.4, Y: -0.9, Z: 1.1}},
		{"near half turn", r3.Vec{X: 0, Y: 3.1, Z: 0}},
		{"x dominant", r3.Vec{X: 2.5, Y: 0.2, Z: -0.1}},
		{"y dominant", r3.Vec{X: 0.1, Y: -2.8, Z: 0.3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rot2Vec(Rot(tt.v))
			assert.True(t, vecNear(got, tt.v, 1e-9), "Rot2Vec(Rot(%v)) = %v", tt.v, got)
		})
	}
}

func TestRot2Vec_HalfTurnIsEquivalent(t *testing.T) {
	v := r3.Vec{Z: math.Pi}
	got := Rot2Vec(Rot(v))

	assert.InDelta(t, math.Pi, r3.Norm(got), 1e-9)
	assert.True(t, mat.EqualApprox(Rot(got), Rot(v), 1e-9))
}

func TestQuaternionConversions(t *testing.T) {
	v := r3.Vec{X: -0.7, Y: 0.2, Z: 1.9}
	q := VecToQuat(v)

	assert.InDelta(t, 1, quat.Abs(q), 1e-12)
	assert.True(t, vecNear(QuatToVec(q), v, 1e-12))

	fromMat := MatToQuat(Rot(v))
	assert.InDelta(t, q.Real, fromMat.Real, 1e-9)
	assert.InDelta(t, q.Imag, fromMat.Imag, 1e-9)
	assert.InDelta(t, q.Jmag, fromMat.Jmag, 1e-9)
	assert.InDelta(t, q.Kmag, fromMat.Kmag, 1e-9)

	// q and -q describe the same rotation.
	assert.True(t, vecNear(QuatToVec(quat.Scale(-1, q)), v, 1e-12))
}

func TestIsRotationMatrix(t *testing.T) {
	// Valid identity
	if !IsRotationMatrix(eye3()) {
		t.Error("identity should be valid")
	}

	// Valid rotation (90° around Z)
	rotZ90 := mat.NewDense(3, 3, []float64{0, -1, 0, 1, 0, 0, 0, 0, 1})
	if !IsRotationMatrix(rotZ90) {
		t.Error("90° Z rotation should be valid")
	}

	// Invalid: reflection (det = -1)
	reflection := mat.NewDense(3, 3, []float64{-1, 0, 0, 0, 1, 0, 0, 0, 1})
	if IsRotationMatrix(reflection) {
		t.Error("reflection should be invalid")
	}

	// Invalid: uniform scale
	scaled := mat.NewDense(3, 3, []float64{2, 0, 0, 0, 2, 0, 0, 0, 2})
	if IsRotationMatrix(scaled) {
		t.Error("scaled matrix should be invalid")
	}

	// Invalid: shear with det = 1
	shear := mat.NewDense(3, 3, []float64{1, 1, 0, 0, 1, 0, 0, 0, 1})
	if IsRotationMatrix(shear) {
		t.Error("shear should be invalid")
	}

	// Invalid: wrong shape
	if IsRotationMatrix(mat.NewDense(2, 2, []float64{1, 0, 0, 1})) {
		t.Error("2x2 matrix should be invalid")
	}
}
