package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChartSVG(t *testing.T) {
	x := []float64{0, 0.5, 1, 1.5, 2}
	y := []float64{0, 0.375, 0, -0.375, 0}

	p, err := Chart(x, y, []float64{0, 2, -3, 1}, ChartOptions{Title: "cubic", Roots: []float64{0, 1, 2, 9}})
	require.NoError(t, err)
	require.InDelta(t, -0.1, p.X.Min, 1e-12)
	require.InDelta(t, 2.1, p.X.Max, 1e-12)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p, "svg", DefaultWidth, DefaultHeight))
	require.True(t, strings.Contains(buf.String(), "<svg"))
	require.Contains(t, buf.String(), "cubic")
}

func TestChartWithoutSamples(t *testing.T) {
	p, err := Chart(nil, nil, []float64{1, 0, -1}, ChartOptions{})
	require.NoError(t, err)
	require.Equal(t, -1.0, p.X.Min)
	require.Equal(t, 1.0, p.X.Max)

	p, err = Chart(nil, nil, []float64{1}, ChartOptions{XMin: -3, XMax: 5})
	require.NoError(t, err)
	require.Equal(t, -3.0, p.X.Min)
	require.Equal(t, 5.0, p.X.Max)
}

func TestChartMismatch(t *testing.T) {
	_, err := Chart([]float64{1, 2}, []float64{1}, nil, ChartOptions{})
	require.Error(t, err)

	_, err = ResidualChart([]float64{1}, nil, "r")
	require.Error(t, err)
}

func TestSavePNG(t *testing.T) {
	p, err := ResidualChart([]float64{0, 1, 2}, []float64{0.1, -0.2, 0.05}, "residuals")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "res.png")
	require.NoError(t, Save(p, path, DefaultWidth, DefaultHeight))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestUnsupportedFormat(t *testing.T) {
	p, err := Chart(nil, nil, []float64{1}, ChartOptions{})
	require.NoError(t, err)

	require.ErrorIs(t, Save(p, filepath.Join(t.TempDir(), "chart.bmp"), DefaultWidth, DefaultHeight), ErrFormat)
	require.ErrorIs(t, Write(&bytes.Buffer{}, p, "gif", DefaultWidth, DefaultHeight), ErrFormat)
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, []float64{0, 1, 2}, []float64{1, 3, 5}, []float64{1, 2}, ChartOptions{Title: "line"})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "echarts")
	require.Contains(t, buf.String(), "samples")

	require.Error(t, HTML(&bytes.Buffer{}, []float64{0}, nil, nil, ChartOptions{}))

	path := filepath.Join(t.TempDir(), "fit.html")
	require.NoError(t, SaveHTML(path, []float64{0, 1}, []float64{0, 1}, []float64{0, 1}, ChartOptions{}))
	_, err = os.Stat(path)
	require.NoError(t, err)
}
