package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical sensor defaults file.
const DefaultConfigPath = "config/sensor.defaults.json"

// SensorConfig is the configuration for a simulated sensor run.
// Every field is optional; the Get* methods supply defaults for fields the
// JSON leaves out.
type SensorConfig struct {
	// Sensor model
	VisibleRate         *float64 `json:"visible_rate,omitempty"`
	TranslationNoiseStd *float64 `json:"translation_noise_std,omitempty"`
	RotationNoiseStd    *float64 `json:"rotation_noise_std,omitempty"`
	Seed                *uint64  `json:"seed,omitempty"` // 0 seeds from runtime entropy

	// Synthetic landmark grid
	LandmarkRows    *int     `json:"landmark_rows,omitempty"`
	LandmarkCols    *int     `json:"landmark_cols,omitempty"`
	LandmarkSpacing *float64 `json:"landmark_spacing,omitempty"`
	LandmarkHeight  *float64 `json:"landmark_height,omitempty"`

	// Observer trajectory (circle around the grid centre)
	TrajectoryRadius *float64 `json:"trajectory_radius,omitempty"`
	TrajectoryHeight *float64 `json:"trajectory_height,omitempty"`
	TrajectorySteps  *int     `json:"trajectory_steps,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrUint64(v uint64) *uint64    { return &v }

// EmptySensorConfig returns a SensorConfig with all fields nil.
func EmptySensorConfig() *SensorConfig {
	return &SensorConfig{}
}

// DefaultSensorConfig returns a SensorConfig with every field populated from
// the built-in defaults.
func DefaultSensorConfig() *SensorConfig {
	c := EmptySensorConfig()
	return &SensorConfig{
		VisibleRate:         ptrFloat64(c.GetVisibleRate()),
		TranslationNoiseStd: ptrFloat64(c.GetTranslationNoiseStd()),
		RotationNoiseStd:    ptrFloat64(c.GetRotationNoiseStd()),
		Seed:                ptrUint64(c.GetSeed()),
		LandmarkRows:        ptrInt(c.GetLandmarkRows()),
		LandmarkCols:        ptrInt(c.GetLandmarkCols()),
		LandmarkSpacing:     ptrFloat64(c.GetLandmarkSpacing()),
		LandmarkHeight:      ptrFloat64(c.GetLandmarkHeight()),
		TrajectoryRadius:    ptrFloat64(c.GetTrajectoryRadius()),
		TrajectoryHeight:    ptrFloat64(c.GetTrajectoryHeight()),
		TrajectorySteps:     ptrInt(c.GetTrajectorySteps()),
	}
}

// LoadSensorConfig loads a SensorConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func LoadSensorConfig(path string) (*SensorConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptySensorConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents. Panics if the file cannot be loaded; intended
// for test setup.
func MustLoadDefaultConfig() *SensorConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from cmd/tools/observe-sim/
	}
	for _, path := range candidates {
		if cfg, err := LoadSensorConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configured values are usable.
func (c *SensorConfig) Validate() error {
	if c.VisibleRate != nil {
		if *c.VisibleRate < 0 || *c.VisibleRate > 1 {
			return fmt.Errorf("visible_rate must be between 0 and 1, got %f", *c.VisibleRate)
		}
	}
	if c.TranslationNoiseStd != nil && *c.TranslationNoiseStd < 0 {
		return fmt.Errorf("translation_noise_std must be non-negative, got %f", *c.TranslationNoiseStd)
	}
	if c.RotationNoiseStd != nil && *c.RotationNoiseStd < 0 {
		return fmt.Errorf("rotation_noise_std must be non-negative, got %f", *c.RotationNoiseStd)
	}
	if c.LandmarkRows != nil && *c.LandmarkRows < 0 {
		return fmt.Errorf("landmark_rows must be non-negative, got %d", *c.LandmarkRows)
	}
	if c.LandmarkCols != nil && *c.LandmarkCols < 0 {
		return fmt.Errorf("landmark_cols must be non-negative, got %d", *c.LandmarkCols)
	}
	if c.LandmarkSpacing != nil && *c.LandmarkSpacing <= 0 {
		return fmt.Errorf("landmark_spacing must be positive, got %f", *c.LandmarkSpacing)
	}
	if c.TrajectoryRadius != nil && *c.TrajectoryRadius < 0 {
		return fmt.Errorf("trajectory_radius must be non-negative, got %f", *c.TrajectoryRadius)
	}
	if c.TrajectorySteps != nil && *c.TrajectorySteps < 1 {
		return fmt.Errorf("trajectory_steps must be at least 1, got %d", *c.TrajectorySteps)
	}
	return nil
}

// GetVisibleRate returns the visible_rate value or the default.
func (c *SensorConfig) GetVisibleRate() float64 {
	if c.VisibleRate == nil {
		return 1.0
	}
	return *c.VisibleRate
}

// GetTranslationNoiseStd returns the translation_noise_std value or the default.
func (c *SensorConfig) GetTranslationNoiseStd() float64 {
	if c.TranslationNoiseStd == nil {
		return 0
	}
	return *c.TranslationNoiseStd
}

// GetRotationNoiseStd returns the rotation_noise_std value or the default.
func (c *SensorConfig) GetRotationNoiseStd() float64 {
	if c.RotationNoiseStd == nil {
		return 0
	}
	return *c.RotationNoiseStd
}

// GetSeed returns the seed value or the default (0, entropy).
func (c *SensorConfig) GetSeed() uint64 {
	if c.Seed == nil {
		return 0
	}
	return *c.Seed
}

// GetLandmarkRows returns the landmark_rows value or the default.
func (c *SensorConfig) GetLandmarkRows() int {
	if c.LandmarkRows == nil {
		return 5
	}
	return *c.LandmarkRows
}

// GetLandmarkCols returns the landmark_cols value or the default.
func (c *SensorConfig) GetLandmarkCols() int {
	if c.LandmarkCols == nil {
		return 5
	}
	return *c.LandmarkCols
}

// GetLandmarkSpacing returns the landmark_spacing value or the default.
func (c *SensorConfig) GetLandmarkSpacing() float64 {
	if c.LandmarkSpacing == nil {
		return 5.0
	}
	return *c.LandmarkSpacing
}

// GetLandmarkHeight returns the landmark_height value or the default.
func (c *SensorConfig) GetLandmarkHeight() float64 {
	if c.LandmarkHeight == nil {
		return 5.0
	}
	return *c.LandmarkHeight
}

// GetTrajectoryRadius returns the trajectory_radius value or the default.
func (c *SensorConfig) GetTrajectoryRadius() float64 {
	if c.TrajectoryRadius == nil {
		return 10.0
	}
	return *c.TrajectoryRadius
}

// GetTrajectoryHeight returns the trajectory_height value or the default.
func (c *SensorConfig) GetTrajectoryHeight() float64 {
	if c.TrajectoryHeight == nil {
		return 9.0
	}
	return *c.TrajectoryHeight
}

// GetTrajectorySteps returns the trajectory_steps value or the default.
func (c *SensorConfig) GetTrajectorySteps() int {
	if c.TrajectorySteps == nil {
		return 36
	}
	return *c.TrajectorySteps
}
