// Package sensor simulates a landmark pose sensor.
//
// Responsibilities: per-landmark visibility trials, transforming visible
// landmarks into the observer's frame, and adding Gaussian measurement
// noise. Key types: Observer, Observation, Noise.
//
// Randomness is always drawn from the Observer's own source. Seed one with
// NewSeededObserver for reproducible runs; the package-level Observe uses a
// shared, entropy-seeded Observer.
//
// Logging goes to three streams (ops, diag, trace) which stay silent until
// SetLogWriters is called.
package sensor

import "github.com/banshee-data/landmark-observer/internal/geometry"

// ErrDimensionMismatch is returned by ObserveMatrix for a map without six
// columns or a pose without six values.
var ErrDimensionMismatch = geometry.ErrDimensionMismatch
