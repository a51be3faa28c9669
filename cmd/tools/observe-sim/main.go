// Command observe-sim walks a simulated pose sensor around a synthetic
// landmark grid and reports what it sees.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/banshee-data/landmark-observer/internal/config"
	"github.com/banshee-data/landmark-observer/internal/monitor"
	"github.com/banshee-data/landmark-observer/internal/monitoring"
	"github.com/banshee-data/landmark-observer/internal/sensor"
	"github.com/banshee-data/landmark-observer/internal/sim"
	"github.com/banshee-data/landmark-observer/internal/version"
)

func main() {
	configPath := flag.String("config", "", "sensor config JSON (defaults built in)")
	plotDir := flag.String("plots", "", "write world.png, visible.png and relative.html under this directory")
	verbose := flag.Bool("v", false, "log per-call sensor diagnostics")
	trace := flag.Bool("trace", false, "log every relative pose")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		log.Printf("observe-sim %s (%s, built %s)", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	cfg := config.DefaultSensorConfig()
	if *configPath != "" {
		loaded, err := config.LoadSensorConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	writers := sensor.LogWriters{Ops: os.Stderr}
	if *verbose {
		writers.Diag = os.Stderr
	}
	if *trace {
		writers.Trace = os.Stderr
	}
	sensor.SetLogWriters(writers)

	outDir := ""
	runID := uuid.NewString()
	if *plotDir != "" {
		outDir = filepath.Join(*plotDir, runID)
	}

	if _, err := run(cfg, runID[:8], outDir, *verbose); err != nil {
		log.Fatal(err)
	}
}

// run walks the configured trajectory once, logging through a run-tagged
// logger. When outDir is set the readings are plotted there.
func run(cfg *config.SensorConfig, runID, outDir string, verbose bool) (sim.Summary, error) {
	logf := monitoring.RunLogf(runID)

	m, trajectory := sim.FromConfig(cfg)
	observer := sim.NewObserver(cfg)
	noise := sim.NoiseFromConfig(cfg)

	var plotter *monitor.ObservationPlotter
	if outDir != "" {
		plotter = monitor.NewObservationPlotter(runID, m)
		if err := plotter.Start(outDir); err != nil {
			return sim.Summary{}, fmt.Errorf("start plotter: %w", err)
		}
	}

	logf("landmarks=%d steps=%d rate=%.3f noise=%v", len(m), len(trajectory), cfg.GetVisibleRate(), noise)

	summary := sim.Run(observer, m, trajectory, cfg.GetVisibleRate(), noise, func(s sim.Step) {
		if plotter != nil {
			plotter.Record(s.Index, s.Pose, s.Observation)
		}
		if verbose {
			logf("step %d pose=%v visible=%d", s.Index, s.Pose, s.Observation.Len())
		}
	})

	logf("visible mean=%.2f min=%d max=%d reprojection_err=%.4fm",
		summary.MeanVisible(), summary.MinVisible, summary.MaxVisible, summary.MeanReprojectionError)

	if plotter == nil {
		return summary, nil
	}
	plotter.Stop()

	n, err := plotter.GeneratePlots()
	if err != nil {
		return summary, fmt.Errorf("generate plots: %w", err)
	}

	htmlPath := filepath.Join(plotter.GetOutputDir(), "relative.html")
	f, err := os.Create(htmlPath)
	if err != nil {
		return summary, fmt.Errorf("create %s: %w", htmlPath, err)
	}
	defer f.Close()
	if err := plotter.RenderRelativeScatter(f); err != nil {
		return summary, fmt.Errorf("render scatter: %w", err)
	}

	logf("✓ wrote %d plots and %s", n, htmlPath)
	return summary, nil
}
