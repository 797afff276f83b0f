package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/polykit/internal/ndarray"
	"github.com/san-kum/polykit/internal/poly"
)

// Candidate is one fitted degree evaluated by a DegreeSearch.
type Candidate struct {
	Degree      int
	Coef        []float64
	Diagnostics Diagnostics
	Metrics     map[string]float64
}

// DegreeSearch fits every candidate degree and keeps the one with the
// smallest metric.
type DegreeSearch struct {
	degrees []int
	metric  string
}

// Degrees returns the inclusive range lo..hi.
func Degrees(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for d := lo; d <= hi; d++ {
		out = append(out, d)
	}
	return out
}

func NewDegreeSearch(degrees []int, metric string) *DegreeSearch {
	return &DegreeSearch{degrees: degrees, metric: metric}
}

// Search fits each degree to (x, y), optionally weighted by w. Degrees that
// fail to fit or that have as many coefficients as samples are skipped.
// The returned slice holds every evaluated candidate in search order.
func (s *DegreeSearch) Search(ctx context.Context, x, y, w []float64) (Candidate, []Candidate, error) {
	switch s.metric {
	case MetricAIC, MetricBIC, MetricRMSE:
	default:
		return Candidate{}, nil, fmt.Errorf("analysis: unknown metric %q", s.metric)
	}

	xa, ya := ndarray.FromSlice(x), ndarray.FromSlice(y)
	var opts []poly.FitOption
	if w != nil {
		opts = append(opts, poly.Weights(ndarray.FromSlice(w)))
	}

	best := math.Inf(1)
	var bestCand Candidate
	found := false
	all := make([]Candidate, 0, len(s.degrees))

	for _, deg := range s.degrees {
		if err := ctx.Err(); err != nil {
			return Candidate{}, all, err
		}
		if deg+1 >= len(x) && len(s.degrees) > 1 {
			continue
		}

		coef, info, err := poly.Fit(xa, ya, deg, opts...)
		if err != nil {
			continue
		}
		diag, err := Diagnose(x, y, coef.Data(), info)
		if err != nil {
			continue
		}

		cand := Candidate{
			Degree:      deg,
			Coef:        coef.Data(),
			Diagnostics: diag,
			Metrics:     diag.Metrics(),
		}
		all = append(all, cand)

		if val := cand.Metrics[s.metric]; val < best {
			best = val
			bestCand = cand
			found = true
		}
	}

	if !found {
		return Candidate{}, all, fmt.Errorf("analysis: no degree in %v could be fitted to %d samples", s.degrees, len(x))
	}
	return bestCand, all, nil
}
