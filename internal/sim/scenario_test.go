package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/landmark-observer/internal/config"
	"github.com/banshee-data/landmark-observer/internal/geometry"
	"github.com/banshee-data/landmark-observer/internal/sensor"
)

func TestGridMap(t *testing.T) {
	m := GridMap(2, 3, 5, 1.5)
	require.Len(t, m, 6)
	assert.Equal(t, geometry.Pose{X: 0, Y: 0, Z: 1.5}, m[0])
	assert.Equal(t, geometry.Pose{X: 10, Y: 0, Z: 1.5}, m[2])
	assert.Equal(t, geometry.Pose{X: 5, Y: 5, Z: 1.5}, m[4])

	assert.Empty(t, GridMap(0, 3, 5, 0))
	assert.NotNil(t, GridMap(0, 3, 5, 0))
}

func TestCircleTrajectory(t *testing.T) {
	center := r3.Vec{X: 10, Y: 10}
	poses := CircleTrajectory(center, 4, 2, 8)
	require.Len(t, poses, 8)

	for i, p := range poses {
		d := math.Hypot(p.X-center.X, p.Y-center.Y)
		assert.InDelta(t, 4, d, 1e-9, "pose %d radius", i)
		assert.Equal(t, 2.0, p.Z)
		assert.True(t, p.RZ > -math.Pi-1e-12 && p.RZ <= math.Pi+1e-12, "pose %d yaw %f out of range", i, p.RZ)
	}

	// First pose sits on +x and faces +y.
	assert.InDelta(t, 14, poses[0].X, 1e-9)
	assert.InDelta(t, math.Pi/2, poses[0].RZ, 1e-9)

	assert.Empty(t, CircleTrajectory(center, 4, 2, 0))
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, wrapAngle(tt.in), 1e-9, "wrapAngle(%f)", tt.in)
	}
}

func TestRun_NoiseFree(t *testing.T) {
	m := GridMap(4, 4, 5, 5)
	traj := CircleTrajectory(r3.Vec{X: 7.5, Y: 7.5}, 10, 9, 12)

	var steps []Step
	sum := Run(sensor.NewSeededObserver(3), m, traj, 1, sensor.Noise{}, func(s Step) {
		steps = append(steps, s)
	})

	assert.Equal(t, 12, sum.Steps)
	assert.Equal(t, 16, sum.Landmarks)
	assert.Equal(t, 12*16, sum.TotalVisible)
	assert.Equal(t, 16, sum.MinVisible)
	assert.Equal(t, 16, sum.MaxVisible)
	assert.InDelta(t, 16, sum.MeanVisible(), 1e-12)
	assert.InDelta(t, 0, sum.MeanReprojectionError, 1e-9)

	require.Len(t, steps, 12)
	for i, s := range steps {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, traj[i], s.Pose)
	}
}

func TestRun_NoisyAndPartial(t *testing.T) {
	m := GridMap(5, 5, 5, 5)
	traj := CircleTrajectory(r3.Vec{X: 10, Y: 10}, 10, 9, 50)

	sum := Run(sensor.NewSeededObserver(11), m, traj, 0.5, sensor.PairNoise(0.2, 0.01), nil)

	assert.InDelta(t, 12.5, sum.MeanVisible(), 2.5)
	assert.LessOrEqual(t, sum.MinVisible, sum.MaxVisible)
	// Mean of |N(0, σ²I₃)| is σ·2√(2/π) ≈ 1.596σ.
	assert.InDelta(t, 0.2*1.596, sum.MeanReprojectionError, 0.03)
}

func TestRun_Empty(t *testing.T) {
	sum := Run(sensor.NewSeededObserver(1), GridMap(3, 3, 1, 0), nil, 1, sensor.Noise{}, nil)
	assert.Equal(t, 0, sum.Steps)
	assert.Equal(t, 0, sum.MinVisible)
	assert.Equal(t, 0.0, sum.MeanVisible())

	sum = Run(sensor.NewSeededObserver(1), nil, CircleTrajectory(r3.Vec{}, 1, 0, 3), 1, sensor.Noise{}, nil)
	assert.Equal(t, 3, sum.Steps)
	assert.Equal(t, 0, sum.TotalVisible)
	assert.Equal(t, 0, sum.MinVisible)
}

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultSensorConfig()
	m, traj := FromConfig(cfg)

	assert.Len(t, m, cfg.GetLandmarkRows()*cfg.GetLandmarkCols())
	require.Len(t, traj, cfg.GetTrajectorySteps())

	// Default 5×5 grid at 5m spacing is centred on (10, 10).
	d := math.Hypot(traj[0].X-10, traj[0].Y-10)
	assert.InDelta(t, cfg.GetTrajectoryRadius(), d, 1e-9)
}

func TestNewObserver_SeedFromConfig(t *testing.T) {
	seed := uint64(1234)
	cfg := &config.SensorConfig{Seed: &seed}
	m := GridMap(3, 3, 2, 0)
	noise := sensor.ScalarNoise(0.1)

	a := NewObserver(cfg).Observe(m, geometry.Identity, 0.5, noise)
	b := NewObserver(cfg).Observe(m, geometry.Identity, 0.5, noise)
	assert.Equal(t, a, b)

	assert.NotNil(t, NewObserver(config.EmptySensorConfig()))
}

func TestNoiseFromConfig(t *testing.T) {
	assert.True(t, NoiseFromConfig(config.EmptySensorConfig()).IsZero())

	tn, rn := 0.1, 0.02
	cfg := &config.SensorConfig{TranslationNoiseStd: &tn, RotationNoiseStd: &rn}
	assert.Equal(t, sensor.PairNoise(0.1, 0.02), NoiseFromConfig(cfg))
}
