package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// RotationTolerance is the tolerance used when checking that a matrix is a
// proper rotation.
const RotationTolerance = 0.01

// smallAngle is the angle (radians) below which first-order expansions
// are used in place of the closed forms.
const smallAngle = 1e-12

// Rot maps a rotation vector (axis·angle) to its 3×3 rotation matrix using
// Rodrigues' formula. The result is orthogonal with determinant +1.
func Rot(v r3.Vec) *mat.Dense {
	theta := r3.Norm(v)
	if theta < smallAngle {
		return mat.NewDense(3, 3, []float64{
			1, -v.Z, v.Y,
			v.Z, 1, -v.X,
			-v.Y, v.X, 1,
		})
	}

	k := r3.Scale(1/theta, v)
	s, c := math.Sincos(theta)
	t := 1 - c

	return mat.NewDense(3, 3, []float64{
		c + t*k.X*k.X, t*k.X*k.Y - s*k.Z, t*k.X*k.Z + s*k.Y,
		t*k.Y*k.X + s*k.Z, c + t*k.Y*k.Y, t*k.Y*k.Z - s*k.X,
		t*k.Z*k.X - s*k.Y, t*k.Z*k.Y + s*k.X, c + t*k.Z*k.Z,
	})
}

// Rot2Vec is the inverse of Rot. The returned rotation vector has an angle
// in [0, π], so Rot2Vec(Rot(v)) == v whenever |v| < π.
func Rot2Vec(r mat.Matrix) r3.Vec {
	return QuatToVec(MatToQuat(r))
}

// MatToQuat converts a rotation matrix to a unit quaternion with a
// non-negative real part (Shepperd's method).
func MatToQuat(r mat.Matrix) quat.Number {
	r00, r01, r02 := r.At(0, 0), r.At(0, 1), r.At(0, 2)
	r10, r11, r12 := r.At(1, 0), r.At(1, 1), r.At(1, 2)
	r20, r21, r22 := r.At(2, 0), r.At(2, 1), r.At(2, 2)

	var q quat.Number
	switch tr := r00 + r11 + r22; {
	case tr > 0:
		s := 2 * math.Sqrt(tr+1)
		q = quat.Number{Real: s / 4, Imag: (r21 - r12) / s, Jmag: (r02 - r20) / s, Kmag: (r10 - r01) / s}
	case r00 > r11 && r00 > r22:
		s := 2 * math.Sqrt(1+r00-r11-r22)
		q = quat.Number{Real: (r21 - r12) / s, Imag: s / 4, Jmag: (r01 + r10) / s, Kmag: (r02 + r20) / s}
	case r11 > r22:
		s := 2 * math.Sqrt(1+r11-r00-r22)
		q = quat.Number{Real: (r02 - r20) / s, Imag: (r01 + r10) / s, Jmag: s / 4, Kmag: (r12 + r21) / s}
	default:
		s := 2 * math.Sqrt(1+r22-r00-r11)
		q = quat.Number{Real: (r10 - r01) / s, Imag: (r02 + r20) / s, Jmag: (r12 + r21) / s, Kmag: s / 4}
	}

	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	if n := quat.Abs(q); n > 0 {
		q = quat.Scale(1/n, q)
	}
	return q
}

// QuatToVec converts a unit quaternion to a rotation vector.
func QuatToVec(q quat.Number) r3.Vec {
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	im := r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	n := r3.Norm(im)
	if n < smallAngle {
		return r3.Scale(2, im)
	}
	angle := 2 * math.Atan2(n, q.Real)
	return r3.Scale(angle/n, im)
}

// VecToQuat converts a rotation vector to a unit quaternion.
func VecToQuat(v r3.Vec) quat.Number {
	theta := r3.Norm(v)
	if theta < smallAngle {
		return quat.Number{Real: 1, Imag: v.X / 2, Jmag: v.Y / 2, Kmag: v.Z / 2}
	}
	s, c := math.Sincos(theta / 2)
	k := r3.Scale(s/theta, v)
	return quat.Number{Real: c, Imag: k.X, Jmag: k.Y, Kmag: k.Z}
}

// IsRotationMatrix reports whether r is a proper rotation: 3×3, orthogonal
// and with determinant +1 (no reflection).
func IsRotationMatrix(r mat.Matrix) bool {
	rows, cols := r.Dims()
	if rows != 3 || cols != 3 {
		return false
	}
	if math.Abs(mat.Det(r)-1) > RotationTolerance {
		return false
	}

	var rtr mat.Dense
	rtr.Mul(r.T(), r)
	return mat.EqualApprox(&rtr, eye3(), RotationTolerance)
}

func eye3() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}
