package sensor

import "fmt"

// Noise holds the standard deviations of the zero-mean Gaussian noise added
// to each observation. The zero value adds no noise.
type Noise struct {
	Translation float64 // meters, per axis
	Rotation    float64 // radians, per rotation-vector component
}

// ScalarNoise applies the same standard deviation to translation and
// rotation.
func ScalarNoise(std float64) Noise {
	return Noise{Translation: std, Rotation: std}
}

// PairNoise sets translation and rotation standard deviations independently.
func PairNoise(translation, rotation float64) Noise {
	return Noise{Translation: translation, Rotation: rotation}
}

// IsZero reports whether no noise will be added.
func (n Noise) IsZero() bool {
	return n.Translation == 0 && n.Rotation == 0
}

func (n Noise) String() string {
	return fmt.Sprintf("σt=%.4gm σr=%.4grad", n.Translation, n.Rotation)
}
