package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/polykit/internal/ndarray"
	"github.com/san-kum/polykit/internal/poly"
	"github.com/stretchr/testify/require"
)

func cubicData() ([]float64, []float64) {
	x := ndarray.Linspace(0, 2, 50)
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = v * (v - 1) * (v - 2)
	}
	return x, y
}

func TestDiagnoseExactFit(t *testing.T) {
	x, y := cubicData()
	d, err := Diagnose(x, y, []float64{0, 2, -3, 1}, poly.FitInfo{Rank: 4, Cond: 10})
	require.NoError(t, err)

	require.Equal(t, 50, d.N)
	require.Equal(t, 3, d.Degree)
	require.Equal(t, 4, d.Rank)
	require.InDelta(t, 0, d.RSS, 1e-20)
	require.InDelta(t, 1, d.RSquared, 1e-12)
	require.InDelta(t, 0, d.MaxAbsResidual, 1e-12)
}

func TestDiagnoseResidualStatistics(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 3, 1, 3}
	// Constant model at the mean.
	d, err := Diagnose(x, y, []float64{2}, poly.FitInfo{Rank: 1})
	require.NoError(t, err)

	require.InDelta(t, 4, d.RSS, 1e-12)
	require.InDelta(t, 1, d.RMSE, 1e-12)
	require.InDelta(t, 0, d.RSquared, 1e-12)
	require.InDelta(t, 0, d.ResidualMean, 1e-12)
	require.InDelta(t, 1, d.ResidualStd, 1e-12)
	require.InDelta(t, 1, d.MaxAbsResidual, 1e-12)
	require.InDelta(t, 4*math.Log(1)+2, d.AIC, 1e-12)
}

func TestDiagnoseErrors(t *testing.T) {
	_, err := Diagnose(nil, nil, []float64{1}, poly.FitInfo{})
	require.ErrorIs(t, err, ErrNoSamples)

	_, err = Diagnose([]float64{1, 2}, []float64{1}, []float64{1}, poly.FitInfo{})
	require.Error(t, err)
}

func TestDegreeSearchPicksTrueDegree(t *testing.T) {
	x, y := cubicData()
	search := NewDegreeSearch(Degrees(0, 7), MetricAIC)

	best, all, err := search.Search(context.Background(), x, y, nil)
	require.NoError(t, err)
	require.Equal(t, 3, best.Degree)
	require.Len(t, all, 8)
	require.InDeltaSlice(t, []float64{0, 2, -3, 1}, best.Coef, 1e-8)
}

func TestDegreeSearchRMSEPrefersHighestExactDegree(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}
	y := []float64{1, 0, 1, 0, 1, 0}
	search := NewDegreeSearch(Degrees(0, 3), MetricRMSE)

	best, _, err := search.Search(context.Background(), x, y, nil)
	require.NoError(t, err)
	require.Equal(t, 3, best.Degree)
}

func TestDegreeSearchUnknownMetric(t *testing.T) {
	x, y := cubicData()
	_, _, err := NewDegreeSearch(Degrees(0, 2), "mse").Search(context.Background(), x, y, nil)
	require.Error(t, err)
}

func TestDegreeSearchCancelled(t *testing.T) {
	x, y := cubicData()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewDegreeSearch(Degrees(0, 4), MetricAIC).Search(ctx, x, y, nil)
	require.ErrorIs(t, err, context.Canceled)
}
