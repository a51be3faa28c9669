package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// PoseDims is the number of values in a pose: x, y, z, rx, ry, rz.
const PoseDims = 6

// ErrDimensionMismatch is returned when a pose or landmark map does not have
// exactly PoseDims values per row.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Pose is a rigid-body pose: position in meters and orientation as a
// rotation vector (axis scaled by angle, radians).
type Pose struct {
	X, Y, Z    float64
	RX, RY, RZ float64
}

// Identity is the pose with no translation and no rotation.
var Identity = Pose{}

// NewPose builds a pose from a position and a rotation vector.
func NewPose(position, rotation r3.Vec) Pose {
	return Pose{
		X: position.X, Y: position.Y, Z: position.Z,
		RX: rotation.X, RY: rotation.Y, RZ: rotation.Z,
	}
}

// PoseFromSlice converts a 6-element slice to a Pose.
func PoseFromSlice(v []float64) (Pose, error) {
	if len(v) != PoseDims {
		return Pose{}, fmt.Errorf("pose has %d values, want %d: %w", len(v), PoseDims, ErrDimensionMismatch)
	}
	return Pose{X: v[0], Y: v[1], Z: v[2], RX: v[3], RY: v[4], RZ: v[5]}, nil
}

// Position returns the translational part.
func (p Pose) Position() r3.Vec { return r3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

// Rotation returns the rotation vector.
func (p Pose) Rotation() r3.Vec { return r3.Vec{X: p.RX, Y: p.RY, Z: p.RZ} }

// Slice returns the pose as [x y z rx ry rz].
func (p Pose) Slice() []float64 {
	return []float64{p.X, p.Y, p.Z, p.RX, p.RY, p.RZ}
}

// String formats the pose for logs.
func (p Pose) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f | %.4f, %.4f, %.4f)", p.X, p.Y, p.Z, p.RX, p.RY, p.RZ)
}

// Compose returns a ⊕ b: b is expressed in a's frame, and the result is b
// expressed in the frame a is expressed in. Rotation is applied before
// translation.
func Compose(a, b Pose) Pose {
	ra := Rot(a.Rotation())
	pos := r3.Add(a.Position(), mulVec(ra, b.Position()))

	var r mat.Dense
	r.Mul(ra, Rot(b.Rotation()))
	return NewPose(pos, Rot2Vec(&r))
}

// Inverse returns the pose q such that Compose(p, q) is the identity.
func Inverse(p Pose) Pose {
	rt := Rot(p.Rotation()).T()
	pos := r3.Scale(-1, mulVec(rt, p.Position()))
	return NewPose(pos, r3.Scale(-1, p.Rotation()))
}

// Relative expresses to in the local frame of from. It is equivalent to
// Compose(Inverse(from), to) but avoids the intermediate pose.
func Relative(from, to Pose) Pose {
	return RelativeWith(Rot(from.Rotation()), from.Position(), to)
}

// RelativeWith is Relative for callers that already hold the observer's
// rotation matrix, so batches do not rebuild it for every landmark.
func RelativeWith(observerRot mat.Matrix, observerPos r3.Vec, to Pose) Pose {
	rt := observerRot.T()
	delta := r3.Sub(to.Position(), observerPos)

	var r mat.Dense
	r.Mul(rt, Rot(to.Rotation()))
	return NewPose(mulVec(rt, delta), Rot2Vec(&r))
}

// ApproxEqual reports whether each component of a and b differs by at most
// tol. Rotations are compared as matrices so that equivalent rotation
// vectors near the ±π wrap compare equal.
func ApproxEqual(a, b Pose, tol float64) bool {
	if math.Abs(a.X-b.X) > tol || math.Abs(a.Y-b.Y) > tol || math.Abs(a.Z-b.Z) > tol {
		return false
	}
	return mat.EqualApprox(Rot(a.Rotation()), Rot(b.Rotation()), tol)
}

func mulVec(m mat.Matrix, v r3.Vec) r3.Vec {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return r3.Vec{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}
