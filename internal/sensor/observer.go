package sensor

import (
	"math"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/landmark-observer/internal/geometry"
)

// Observation is the result of one sensor reading.
//
// Relative[i] is the pose of Visible[i] expressed in the observer's frame,
// and Visible[i] is row Indices[i] of the input map. Indices is strictly
// increasing, so Visible is an order-preserving subsequence of the map.
type Observation struct {
	Relative []geometry.Pose
	Visible  []geometry.Pose
	Indices  []int
}

// Len returns the number of visible landmarks.
func (o Observation) Len() int { return len(o.Relative) }

// Empty reports whether no landmark was visible.
func (o Observation) Empty() bool { return len(o.Relative) == 0 }

// RelativeDense returns the relative poses as an M×6 matrix, or nil when M is 0.
func (o Observation) RelativeDense() *mat.Dense { return geometry.ToDense(o.Relative) }

// VisibleDense returns the visible landmarks as an M×6 matrix, or nil when M is 0.
func (o Observation) VisibleDense() *mat.Dense { return geometry.ToDense(o.Visible) }

// Observer simulates a pose sensor. Each Observer owns its random source and
// serialises access to it, so one Observer may be shared between goroutines
// and a seeded Observer produces a reproducible sequence of readings.
type Observer struct {
	mu  sync.Mutex
	src rand.Source
}

// NewObserver returns an Observer drawing from src.
func NewObserver(src rand.Source) *Observer {
	return &Observer{src: src}
}

// NewSeededObserver returns an Observer backed by a PCG source seeded with seed.
func NewSeededObserver(seed uint64) *Observer {
	return NewObserver(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

var defaultObserver = NewObserver(rand.NewPCG(rand.Uint64(), rand.Uint64()))

// Observe reads landmarks from pose using the process-wide default Observer.
func Observe(landmarks []geometry.Pose, pose geometry.Pose, visibleRate float64, noise Noise) Observation {
	return defaultObserver.Observe(landmarks, pose, visibleRate, noise)
}

// Observe returns the landmarks visible from pose, each transformed into the
// observer's local frame and perturbed by noise.
//
// Every landmark is kept independently with probability visibleRate (a
// uniform draw in [0,1) below the rate). The rate is not clamped: values
// at or above 1 keep every landmark and values at or below 0 keep none.
// When nothing is visible both slices are empty, not nil.
func (o *Observer) Observe(landmarks []geometry.Pose, pose geometry.Pose, visibleRate float64, noise Noise) Observation {
	if math.IsNaN(visibleRate) || visibleRate < 0 || visibleRate > 1 {
		Opsf("visible rate %v outside [0,1]; no clamping applied", visibleRate)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	uniform := distuv.Uniform{Min: 0, Max: 1, Src: o.src}
	indices := make([]int, 0, len(landmarks))
	for i := range landmarks {
		if uniform.Rand() < visibleRate {
			indices = append(indices, i)
		}
	}

	obs := Observation{
		Relative: make([]geometry.Pose, 0, len(indices)),
		Visible:  make([]geometry.Pose, 0, len(indices)),
		Indices:  indices,
	}
	if len(indices) == 0 {
		Diagf("observe: n=%d visible=0 rate=%.3f", len(landmarks), visibleRate)
		return obs
	}

	rot := geometry.Rot(pose.Rotation())
	pos := pose.Position()
	transNoise := distuv.Normal{Mu: 0, Sigma: noise.Translation, Src: o.src}
	rotNoise := distuv.Normal{Mu: 0, Sigma: noise.Rotation, Src: o.src}
	trace := traceEnabled()

	for _, i := range indices {
		l := landmarks[i]
		rel := geometry.RelativeWith(rot, pos, l)

		rel.X += transNoise.Rand()
		rel.Y += transNoise.Rand()
		rel.Z += transNoise.Rand()
		rel.RX += rotNoise.Rand()
		rel.RY += rotNoise.Rand()
		rel.RZ += rotNoise.Rand()

		if trace {
			Tracef("landmark %d %v -> %v", i, l, rel)
		}
		obs.Visible = append(obs.Visible, l)
		obs.Relative = append(obs.Relative, rel)
	}

	Diagf("observe: n=%d visible=%d rate=%.3f noise=%v", len(landmarks), len(indices), visibleRate, noise)
	return obs
}

// ObserveMatrix is Observe for an N×6 landmark matrix and a 6-element pose.
// It returns geometry.ErrDimensionMismatch if either shape is wrong.
func (o *Observer) ObserveMatrix(landmarks mat.Matrix, pose []float64, visibleRate float64, noise Noise) (Observation, error) {
	p, err := geometry.PoseFromSlice(pose)
	if err != nil {
		return Observation{}, err
	}
	m, err := geometry.FromMatrix(landmarks)
	if err != nil {
		return Observation{}, err
	}
	return o.Observe(m, p, visibleRate, noise), nil
}
