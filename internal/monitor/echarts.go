package monitor

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderRelativeScatter writes an HTML scatter of every recorded relative
// observation in the observer's local frame (x right, y forward). Point
// colour encodes the step index.
func (op *ObservationPlotter) RenderRelativeScatter(w io.Writer) error {
	samples := op.Samples()

	data := make([]opts.ScatterData, 0)
	maxAbs := 0.0
	for _, s := range samples {
		for _, rel := range s.Observation.Relative {
			maxAbs = math.Max(maxAbs, math.Max(math.Abs(rel.X), math.Abs(rel.Y)))
			data = append(data, opts.ScatterData{Value: []interface{}{rel.X, rel.Y, s.Step}})
		}
	}

	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}
	maxStep := float32(len(samples))
	if maxStep == 0 {
		maxStep = 1
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Relative Observations", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Relative Observations", Subtitle: fmt.Sprintf("run=%s steps=%d points=%d", op.runID, len(samples), len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        maxStep,
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#fde725"}},
		}),
	)
	scatter.AddSeries("relative", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
