package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FromMatrix converts an N×6 matrix (one pose per row) into poses, keeping
// row order. A matrix with no rows yields an empty slice regardless of its
// column count.
func FromMatrix(m mat.Matrix) ([]Pose, error) {
	if m == nil {
		return []Pose{}, nil
	}
	rows, cols := m.Dims()
	if rows == 0 {
		return []Pose{}, nil
	}
	if cols != PoseDims {
		return nil, fmt.Errorf("landmark map has %d columns, want %d: %w", cols, PoseDims, ErrDimensionMismatch)
	}

	poses := make([]Pose, rows)
	for i := range poses {
		poses[i] = Pose{
			X: m.At(i, 0), Y: m.At(i, 1), Z: m.At(i, 2),
			RX: m.At(i, 3), RY: m.At(i, 4), RZ: m.At(i, 5),
		}
	}
	return poses, nil
}

// ToDense packs poses into an N×6 matrix. gonum cannot represent a matrix
// with zero rows, so an empty input returns nil.
func ToDense(poses []Pose) *mat.Dense {
	if len(poses) == 0 {
		return nil
	}
	data := make([]float64, 0, len(poses)*PoseDims)
	for _, p := range poses {
		data = append(data, p.Slice()...)
	}
	return mat.NewDense(len(poses), PoseDims, data)
}
