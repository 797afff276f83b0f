package batch

import (
	"context"
	"fmt"

	"github.com/san-kum/polykit/internal/analysis"
	"github.com/san-kum/polykit/internal/config"
	"github.com/san-kum/polykit/internal/ndarray"
	"github.com/san-kum/polykit/internal/poly"
	"github.com/san-kum/polykit/internal/storage"
)

// Result is the outcome of one job. Err is set when the job failed, in which
// case only Name and Config are meaningful.
type Result struct {
	Name   string
	Config *config.Config

	X, Y, W []float64
	Coef    []float64
	Info    poly.FitInfo

	Diagnostics analysis.Diagnostics
	RunID       string
	Err         error
}

// Samples returns the job's samples, read from Data.File or generated from
// Data.Coeffs.
func Samples(cfg *config.Config) (x, y, w []float64, err error) {
	if cfg.Data.Synthetic() {
		x, y = cfg.Data.Generate()
		return x, y, nil, nil
	}
	return storage.ReadSamplesFile(cfg.Data.File, cfg.Data.XCol, cfg.Data.YCol, cfg.Data.WCol)
}

// Execute runs a single job to completion.
func Execute(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x, y, w, err := Samples(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: samples: %w", cfg.Name, err)
	}
	return FitSamples(cfg, x, y, w)
}

// Selection is the outcome of a degree search over a job's samples.
type Selection struct {
	Metric     string
	Best       analysis.Candidate
	Candidates []analysis.Candidate
}

// Select fits every degree from minDegree through cfg.MaxDegree to the job's
// samples and keeps the best by cfg.Metric.
func Select(ctx context.Context, cfg *config.Config, minDegree int) (*Selection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if minDegree < 0 || minDegree > cfg.MaxDegree {
		return nil, fmt.Errorf("%w: min degree %d outside 0..%d", config.ErrInvalidConfig, minDegree, cfg.MaxDegree)
	}

	x, y, w, err := Samples(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: samples: %w", cfg.Name, err)
	}

	search := analysis.NewDegreeSearch(analysis.Degrees(minDegree, cfg.MaxDegree), cfg.Metric)
	best, all, err := search.Search(ctx, x, y, w)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name, err)
	}
	return &Selection{Metric: cfg.Metric, Best: best, Candidates: all}, nil
}

// FitSamples fits already loaded samples according to cfg.
func FitSamples(cfg *config.Config, x, y, w []float64) (*Result, error) {
	var opts []poly.FitOption
	if w != nil {
		opts = append(opts, poly.Weights(ndarray.FromSlice(w)))
	}
	if cfg.RCond > 0 {
		opts = append(opts, poly.RCond(cfg.RCond))
	}

	xa, ya := ndarray.FromSlice(x), ndarray.FromSlice(y)
	var (
		coef *ndarray.Array[float64]
		info poly.FitInfo
		err  error
	)
	if len(cfg.Terms) > 0 {
		coef, info, err = poly.FitTerms(xa, ya, cfg.Terms, opts...)
	} else {
		coef, info, err = poly.Fit(xa, ya, cfg.Degree, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name, err)
	}

	diag, err := analysis.Diagnose(x, y, coef.Data(), info)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name, err)
	}

	return &Result{
		Name:        cfg.Name,
		Config:      cfg,
		X:           x,
		Y:           y,
		W:           w,
		Coef:        coef.Data(),
		Info:        info,
		Diagnostics: diag,
	}, nil
}

// StorageRun converts a successful result into the form the store persists.
func (r *Result) StorageRun() *storage.Run {
	source := "file:" + r.Config.Data.File
	if r.Config.Data.Synthetic() {
		source = "generated"
	}
	return &storage.Run{
		Name:           r.Name,
		Source:         source,
		Degree:         len(r.Coef) - 1,
		Terms:          r.Config.Terms,
		RCond:          r.Info.RCond,
		X:              r.X,
		Y:              r.Y,
		W:              r.W,
		Coef:           r.Coef,
		Rank:           r.Info.Rank,
		SingularValues: r.Info.SingularValues,
		Residuals:      r.Info.Residuals,
		Diagnostics:    r.Diagnostics,
	}
}
