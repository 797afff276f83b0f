package viz

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/polykit/internal/ndarray"
	"github.com/san-kum/polykit/internal/poly"
)

var superscripts = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

// FormatPolynomial renders coef as "c0 + c1·x + c2·x²", lowest power first.
// Zero terms are omitted and unit coefficients drop the factor.
func FormatPolynomial(coef []float64, variable string) string {
	var b strings.Builder
	for i, c := range coef {
		if c == 0 {
			continue
		}
		mag := math.Abs(c)
		switch {
		case b.Len() == 0 && c < 0:
			b.WriteString("-")
		case b.Len() > 0 && c < 0:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}
		if i == 0 || mag != 1 {
			b.WriteString(strconv.FormatFloat(mag, 'g', 6, 64))
			if i > 0 {
				b.WriteString("·")
			}
		}
		if i > 0 {
			b.WriteString(variable)
		}
		if i > 1 {
			b.WriteString(superscript(i))
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

func superscript(n int) string {
	var b strings.Builder
	for _, d := range strconv.Itoa(n) {
		b.WriteRune(superscripts[d-'0'])
	}
	return b.String()
}

// FormatComplex prints real values without an imaginary part.
func FormatComplex(c complex128) string {
	if imag(c) == 0 {
		return strconv.FormatFloat(real(c), 'g', 8, 64)
	}
	return fmt.Sprintf("%.8g%+.8gi", real(c), imag(c))
}

// FormatValues joins values with ", " using %g.
func FormatValues[T ndarray.Number](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = FormatComplex(ndarray.ToComplex(v))
	}
	return strings.Join(parts, ", ")
}

// PlotPolynomial draws coef over [lo, hi] as an asciigraph line chart.
func PlotPolynomial(coef []float64, lo, hi float64, width, height int, caption string) string {
	n := max(width, 2)
	xs := ndarray.Linspace(lo, hi, n)
	ys := make([]float64, n)
	for i, x := range xs {
		ys[i] = poly.EvaluateAt(x, coef)
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// PlotFit overlays samples and the fitted values at the sample abscissas,
// ordered by x. Samples are drawn evenly spaced, so unevenly sampled data is
// shown in index order rather than to scale.
func PlotFit(x, y, coef []float64, width, height int, caption string) string {
	if len(x) == 0 || len(x) != len(y) {
		return ""
	}
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	samples := make([]float64, len(x))
	fitted := make([]float64, len(x))
	for i, j := range idx {
		samples[i] = y[j]
		fitted[i] = poly.EvaluateAt(x[j], coef)
	}
	return asciigraph.PlotMany([][]float64{samples, fitted},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
	)
}

// RenderCurve draws coef on a Braille canvas of w x h cells with its real
// roots marked on the x axis.
func RenderCurve(coef []float64, lo, hi float64, w, h int, roots []float64) string {
	c := NewCanvas(w, h)
	ymin, ymax := c.PlotFunction(func(x float64) float64 {
		return poly.EvaluateAt(x, coef)
	}, lo, hi, roots)
	return fmt.Sprintf("%s%s\n", c.String(), Subtle.Render(fmt.Sprintf("x ∈ [%.3g, %.3g]  y ∈ [%.3g, %.3g]", lo, hi, ymin, ymax)))
}
