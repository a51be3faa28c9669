package monitor

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/landmark-observer/internal/geometry"
	"github.com/banshee-data/landmark-observer/internal/sensor"
)

// ObservationSample is one recorded sensor reading.
type ObservationSample struct {
	Step        int
	Pose        geometry.Pose
	Observation sensor.Observation
}

// ObservationPlotter records sensor readings along a trajectory so they can
// be plotted after a run.
type ObservationPlotter struct {
	mu        sync.Mutex
	enabled   bool
	outputDir string
	runID     string

	landmarks []geometry.Pose
	samples   []ObservationSample
}

// NewObservationPlotter creates a plotter for the given map.
func NewObservationPlotter(runID string, landmarks []geometry.Pose) *ObservationPlotter {
	return &ObservationPlotter{
		runID:     runID,
		landmarks: landmarks,
	}
}

// Start creates outputDir and begins recording.
func (op *ObservationPlotter) Start(outputDir string) error {
	op.mu.Lock()
	defer op.mu.Unlock()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	op.outputDir = outputDir
	op.enabled = true
	op.samples = nil
	return nil
}

// Stop disables recording. Call GeneratePlots to produce output files.
func (op *ObservationPlotter) Stop() {
	op.mu.Lock()
	defer op.mu.Unlock()
	op.enabled = false
}

// IsEnabled returns true if the plotter is currently recording.
func (op *ObservationPlotter) IsEnabled() bool {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.enabled
}

// Record stores one reading taken from pose.
func (op *ObservationPlotter) Record(step int, pose geometry.Pose, obs sensor.Observation) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if !op.enabled {
		return
	}
	op.samples = append(op.samples, ObservationSample{Step: step, Pose: pose, Observation: obs})
}

// Samples returns a copy of the recorded readings.
func (op *ObservationPlotter) Samples() []ObservationSample {
	op.mu.Lock()
	defer op.mu.Unlock()
	out := make([]ObservationSample, len(op.samples))
	copy(out, op.samples)
	return out
}

// GeneratePlots writes world.png (map, trajectory and reconstructed
// landmark positions) and visible.png (visible count per step). It returns
// the number of files written.
func (op *ObservationPlotter) GeneratePlots() (int, error) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.outputDir == "" {
		return 0, fmt.Errorf("no output directory configured")
	}
	if len(op.samples) == 0 {
		return 0, nil
	}

	if err := op.generateWorldPlot(); err != nil {
		return 0, fmt.Errorf("world plot: %w", err)
	}
	if err := op.generateVisiblePlot(); err != nil {
		return 1, fmt.Errorf("visible plot: %w", err)
	}
	return 2, nil
}

func (op *ObservationPlotter) generateWorldPlot() error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Run %s - World Frame (top-down)", op.runID)
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	mapPts := make(plotter.XYs, len(op.landmarks))
	for i, l := range op.landmarks {
		mapPts[i] = plotter.XY{X: l.X, Y: l.Y}
	}
	if len(mapPts) > 0 {
		mapScatter, err := plotter.NewScatter(mapPts)
		if err != nil {
			return err
		}
		mapScatter.GlyphStyle.Color = color.Black
		mapScatter.GlyphStyle.Radius = vg.Points(4)
		p.Add(mapScatter)
		p.Legend.Add("landmarks", mapScatter)
	}

	trajPts := make(plotter.XYs, len(op.samples))
	for i, s := range op.samples {
		trajPts[i] = plotter.XY{X: s.Pose.X, Y: s.Pose.Y}
	}
	trajLine, err := plotter.NewLine(trajPts)
	if err != nil {
		return err
	}
	trajLine.Width = vg.Points(1)
	trajLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(trajLine)
	p.Legend.Add("observer", trajLine)

	colors := generateColors(len(op.samples))
	for i, s := range op.samples {
		if s.Observation.Empty() {
			continue
		}
		pts := make(plotter.XYs, s.Observation.Len())
		for j, rel := range s.Observation.Relative {
			w := geometry.Compose(s.Pose, rel)
			pts[j] = plotter.XY{X: w.X, Y: w.Y}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = colors[i]
		sc.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	file := filepath.Join(op.outputDir, "world.png")
	if err := p.Save(10*vg.Inch, 10*vg.Inch, file); err != nil {
		return fmt.Errorf("save world plot: %w", err)
	}
	return nil
}

func (op *ObservationPlotter) generateVisiblePlot() error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Run %s - Visible Landmarks", op.runID)
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "Visible count"

	pts := make(plotter.XYs, len(op.samples))
	for i, s := range op.samples {
		pts[i] = plotter.XY{X: float64(s.Step), Y: float64(s.Observation.Len())}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	p.Add(line)

	file := filepath.Join(op.outputDir, "visible.png")
	if err := p.Save(14*vg.Inch, 6*vg.Inch, file); err != nil {
		return fmt.Errorf("save visible plot: %w", err)
	}
	return nil
}

// GetOutputDir returns the current output directory for plots.
func (op *ObservationPlotter) GetOutputDir() string {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.outputDir
}

// generateColors creates a palette of distinct colors, one per step.
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		return uint8(l * 255), uint8(l * 255), uint8(l * 255)
	}

	q := l + s - l*s
	if l < 0.5 {
		q = l * (1 + s)
	}
	p := 2*l - q
	return uint8(hueToRGB(p, q, h+1.0/3.0) * 255),
		uint8(hueToRGB(p, q, h) * 255),
		uint8(hueToRGB(p, q, h-1.0/3.0) * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
