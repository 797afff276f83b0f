package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/san-kum/polykit/internal/poly"
)

// ErrNoSamples indicates diagnostics requested for an empty data set.
var ErrNoSamples = errors.New("analysis: no samples")

// Metric names understood by DegreeSearch.
const (
	MetricAIC  = "aic"
	MetricBIC  = "bic"
	MetricRMSE = "rmse"
)

// Diagnostics summarizes how well a polynomial fits a set of samples.
type Diagnostics struct {
	N      int `json:"n"`
	Degree int `json:"degree"`

	RSS      float64 `json:"rss"`
	RMSE     float64 `json:"rmse"`
	RSquared float64 `json:"r_squared"`
	AIC      float64 `json:"aic"`
	BIC      float64 `json:"bic"`

	ResidualMean   float64 `json:"residual_mean"`
	ResidualMedian float64 `json:"residual_median"`
	ResidualStd    float64 `json:"residual_std"`
	MaxAbsResidual float64 `json:"max_abs_residual"`

	Rank int     `json:"rank"`
	Cond float64 `json:"cond"`
}

// Metrics returns the scores DegreeSearch can rank by.
func (d Diagnostics) Metrics() map[string]float64 {
	return map[string]float64{
		MetricAIC:  d.AIC,
		MetricBIC:  d.BIC,
		MetricRMSE: d.RMSE,
	}
}

// Residuals returns y - p(x) for the polynomial coef.
func Residuals(x, y, coef []float64) []float64 {
	r := make([]float64, len(x))
	for i, xi := range x {
		r[i] = y[i] - poly.EvaluateAt(xi, coef)
	}
	return r
}

// Diagnose computes fit statistics for coef against the samples (x, y).
// info supplies the rank and condition number reported by the fit.
func Diagnose(x, y, coef []float64, info poly.FitInfo) (Diagnostics, error) {
	n := len(x)
	if n == 0 {
		return Diagnostics{}, ErrNoSamples
	}
	if len(y) != n {
		return Diagnostics{}, fmt.Errorf("analysis: %d x values but %d y values", n, len(y))
	}

	res := Residuals(x, y, coef)
	d := Diagnostics{
		N:      n,
		Degree: len(coef) - 1,
		Rank:   info.Rank,
		Cond:   info.Cond,
	}

	var err error
	abs := make(stats.Float64Data, n)
	for i, r := range res {
		d.RSS += r * r
		abs[i] = math.Abs(r)
	}
	if d.ResidualMean, err = stats.Mean(res); err != nil {
		return Diagnostics{}, err
	}
	if d.ResidualMedian, err = stats.Median(res); err != nil {
		return Diagnostics{}, err
	}
	if d.ResidualStd, err = stats.StandardDeviation(res); err != nil {
		return Diagnostics{}, err
	}
	if d.MaxAbsResidual, err = stats.Max(abs); err != nil {
		return Diagnostics{}, err
	}
	d.RMSE = math.Sqrt(d.RSS / float64(n))

	variance, err := stats.Variance(y)
	if err != nil {
		return Diagnostics{}, err
	}
	tss := variance * float64(n)
	switch {
	case tss > 0:
		d.RSquared = 1 - d.RSS/tss
	case d.RSS == 0:
		d.RSquared = 1
	}

	// Exact fits drive RSS to rounding noise; a floor relative to the total
	// variation keeps the information criteria comparable across degrees.
	rss := math.Max(d.RSS, math.Max(tss*1e-20, 1e-300))
	k := float64(len(coef))
	nf := float64(n)
	d.AIC = nf*math.Log(rss/nf) + 2*k
	d.BIC = nf*math.Log(rss/nf) + k*math.Log(nf)
	return d, nil
}
