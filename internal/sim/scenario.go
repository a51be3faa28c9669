// Package sim drives a sensor Observer over synthetic landmark maps and
// observer trajectories.
package sim

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/landmark-observer/internal/config"
	"github.com/banshee-data/landmark-observer/internal/geometry"
	"github.com/banshee-data/landmark-observer/internal/sensor"
)

// GridMap lays out rows×cols landmarks on a square grid at the given height,
// starting at the origin, in row-major order. All landmarks share the world
// orientation.
func GridMap(rows, cols int, spacing, height float64) []geometry.Pose {
	if rows <= 0 || cols <= 0 {
		return []geometry.Pose{}
	}
	m := make([]geometry.Pose, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m = append(m, geometry.Pose{X: float64(c) * spacing, Y: float64(r) * spacing, Z: height})
		}
	}
	return m
}

// CircleTrajectory returns steps poses evenly spaced on a circle around
// center at the given height. Each pose yaws so that its x axis faces along
// the direction of travel.
func CircleTrajectory(center r3.Vec, radius, height float64, steps int) []geometry.Pose {
	if steps <= 0 {
		return []geometry.Pose{}
	}
	poses := make([]geometry.Pose, steps)
	for i := range poses {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		s, c := math.Sincos(theta)
		poses[i] = geometry.Pose{
			X:  center.X + radius*c,
			Y:  center.Y + radius*s,
			Z:  height,
			RZ: wrapAngle(theta + math.Pi/2),
		}
	}
	return poses
}

// wrapAngle maps a to (-π, π].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Step is one reading along a trajectory.
type Step struct {
	Index       int
	Pose        geometry.Pose
	Observation sensor.Observation
}

// Summary aggregates a run.
type Summary struct {
	Steps        int
	Landmarks    int
	TotalVisible int
	MinVisible   int
	MaxVisible   int
	// MeanReprojectionError is the mean distance between pose ⊕ relative and
	// the true landmark position. It is zero for a noise-free sensor.
	MeanReprojectionError float64
}

// MeanVisible returns the average visible count per step.
func (s Summary) MeanVisible() float64 {
	if s.Steps == 0 {
		return 0
	}
	return float64(s.TotalVisible) / float64(s.Steps)
}

// Run observes m from every pose in trajectory, calling onStep (if not nil)
// after each reading.
func Run(o *sensor.Observer, m []geometry.Pose, trajectory []geometry.Pose, visibleRate float64, noise sensor.Noise, onStep func(Step)) Summary {
	sum := Summary{Steps: len(trajectory), Landmarks: len(m), MinVisible: -1}
	var errSum float64

	for i, pose := range trajectory {
		obs := o.Observe(m, pose, visibleRate, noise)

		n := obs.Len()
		sum.TotalVisible += n
		if sum.MinVisible < 0 || n < sum.MinVisible {
			sum.MinVisible = n
		}
		if n > sum.MaxVisible {
			sum.MaxVisible = n
		}
		for j, rel := range obs.Relative {
			w := geometry.Compose(pose, rel)
			errSum += r3.Norm(r3.Sub(w.Position(), obs.Visible[j].Position()))
		}

		if onStep != nil {
			onStep(Step{Index: i, Pose: pose, Observation: obs})
		}
	}

	if sum.MinVisible < 0 {
		sum.MinVisible = 0
	}
	if sum.TotalVisible > 0 {
		sum.MeanReprojectionError = errSum / float64(sum.TotalVisible)
	}
	return sum
}

// FromConfig builds the landmark grid and trajectory described by cfg. The
// trajectory circles the centre of the grid.
func FromConfig(cfg *config.SensorConfig) (m []geometry.Pose, trajectory []geometry.Pose) {
	rows, cols := cfg.GetLandmarkRows(), cfg.GetLandmarkCols()
	spacing := cfg.GetLandmarkSpacing()
	m = GridMap(rows, cols, spacing, cfg.GetLandmarkHeight())

	center := r3.Vec{
		X: float64(max(cols-1, 0)) * spacing / 2,
		Y: float64(max(rows-1, 0)) * spacing / 2,
	}
	trajectory = CircleTrajectory(center, cfg.GetTrajectoryRadius(), cfg.GetTrajectoryHeight(), cfg.GetTrajectorySteps())
	return m, trajectory
}

// NoiseFromConfig returns the measurement noise configured in cfg.
func NoiseFromConfig(cfg *config.SensorConfig) sensor.Noise {
	return sensor.PairNoise(cfg.GetTranslationNoiseStd(), cfg.GetRotationNoiseStd())
}

// NewObserver returns a seeded Observer when cfg sets a seed, or one seeded
// from runtime entropy otherwise.
func NewObserver(cfg *config.SensorConfig) *sensor.Observer {
	if seed := cfg.GetSeed(); seed != 0 {
		return sensor.NewSeededObserver(seed)
	}
	return sensor.NewSeededObserver(rand.Uint64())
}
