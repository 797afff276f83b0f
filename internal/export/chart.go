// Package export renders fits as image files with gonum/plot.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/san-kum/polykit/internal/poly"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	DefaultWidth   = 6 * vg.Inch
	DefaultHeight  = 4 * vg.Inch
	curveSamples   = 400
	defaultPadding = 0.05
)

var (
	sampleColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	curveColor  = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	rootColor   = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
)

// ErrFormat is returned for output formats gonum/plot cannot write.
var ErrFormat = errors.New("export: unsupported format")

var formats = map[string]bool{
	"eps": true, "jpg": true, "jpeg": true, "pdf": true,
	"png": true, "svg": true, "tex": true, "tif": true, "tiff": true,
}

type ChartOptions struct {
	Title string
	// XMin and XMax bound the curve. Both zero means the sample range, or
	// [-1, 1] without samples.
	XMin, XMax float64
	// Roots are marked on the x axis when set.
	Roots []float64
}

// Chart plots the samples (x, y) and the polynomial coef over them. Either
// the samples or the polynomial may be empty.
func Chart(x, y, coef []float64, opts ChartOptions) (*plot.Plot, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("export: %d x values but %d y values", len(x), len(y))
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	lo, hi := curveRange(x, opts)

	if len(x) > 0 {
		pts := make(plotter.XYs, len(x))
		for i := range x {
			pts[i].X, pts[i].Y = x[i], y[i]
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = sampleColor
		s.GlyphStyle.Radius = vg.Points(2)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add("samples", s)
	}

	if len(coef) > 0 {
		f := plotter.NewFunction(func(v float64) float64 {
			return poly.EvaluateAt(v, coef)
		})
		f.XMin, f.XMax = lo, hi
		f.Samples = curveSamples
		f.Color = curveColor
		f.Width = vg.Points(1.5)
		p.Add(f)
		p.Legend.Add(fmt.Sprintf("degree %d fit", len(coef)-1), f)
	}

	if len(opts.Roots) > 0 {
		pts := make(plotter.XYs, 0, len(opts.Roots))
		for _, r := range opts.Roots {
			if r >= lo && r <= hi {
				pts = append(pts, plotter.XY{X: r})
			}
		}
		if len(pts) > 0 {
			s, err := plotter.NewScatter(pts)
			if err != nil {
				return nil, err
			}
			s.GlyphStyle.Color = rootColor
			s.GlyphStyle.Radius = vg.Points(3)
			s.GlyphStyle.Shape = draw.CrossGlyph{}
			p.Add(s)
			p.Legend.Add("roots", s)
		}
	}

	p.X.Min, p.X.Max = lo, hi
	return p, nil
}

// ResidualChart plots y - p(x) against x.
func ResidualChart(x, residuals []float64, title string) (*plot.Plot, error) {
	if len(x) != len(residuals) {
		return nil, fmt.Errorf("export: %d x values but %d residuals", len(x), len(residuals))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "residual"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X, pts[i].Y = x[i], residuals[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = sampleColor
	s.GlyphStyle.Radius = vg.Points(2)

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = color.Gray{Y: 0x80}
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(s, zero)
	return p, nil
}

// Save writes p to path; the format follows the file extension.
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !formats[format] {
		return fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}
	return p.Save(width, height, path)
}

// Write renders p in format ("svg", "png", ...) to out.
func Write(out io.Writer, p *plot.Plot, format string, width, height vg.Length) error {
	format = strings.ToLower(format)
	if !formats[format] {
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(out)
	return err
}

func curveRange(x []float64, opts ChartOptions) (lo, hi float64) {
	if opts.XMin != 0 || opts.XMax != 0 {
		return opts.XMin, opts.XMax
	}
	if len(x) == 0 {
		return -1, 1
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range x {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := (hi - lo) * defaultPadding
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}
