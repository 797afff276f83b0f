package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/san-kum/polykit/internal/ndarray"
	"github.com/san-kum/polykit/internal/poly"
)

// HTML writes an interactive echarts page with the samples as a scatter
// series and the polynomial sampled densely as a line.
func HTML(out io.Writer, x, y, coef []float64, o ChartOptions) error {
	if len(x) != len(y) {
		return fmt.Errorf("export: %d x values but %d y values", len(x), len(y))
	}

	lo, hi := curveRange(x, o)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Theme:     types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    o.Title,
			Subtitle: fmt.Sprintf("degree %d fit over %d samples", len(coef)-1, len(x)),
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "x", Min: lo, Max: hi}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "y"}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)

	points := make([]opts.ScatterData, len(x))
	for i := range x {
		points[i] = opts.ScatterData{Value: []float64{x[i], y[i]}, SymbolSize: 6}
	}
	scatter.AddSeries("samples", points)

	if len(coef) > 0 {
		xs := ndarray.Linspace(lo, hi, curveSamples)
		curve := make([]opts.LineData, len(xs))
		for i, v := range xs {
			curve[i] = opts.LineData{Value: []float64{v, poly.EvaluateAt(v, coef)}}
		}
		line := charts.NewLine()
		line.AddSeries("fit", curve)
		scatter.Overlap(line)
	}

	return scatter.Render(out)
}

// SaveHTML is HTML written to path.
func SaveHTML(path string, x, y, coef []float64, o ChartOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return HTML(f, x, y, coef, o)
}
