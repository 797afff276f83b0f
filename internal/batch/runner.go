package batch

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/polykit/internal/config"
	"github.com/san-kum/polykit/internal/storage"
)

type Runner struct {
	workers int
	store   *storage.Store
}

// NewRunner returns a Runner with the given concurrency; workers <= 0 uses
// GOMAXPROCS.
func NewRunner(workers int) *Runner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{workers: workers}
}

// WithStore makes the runner save every successful result.
func (r *Runner) WithStore(st *storage.Store) *Runner {
	r.store = st
	return r
}

// Run executes jobs concurrently and returns one Result per job, in job
// order. A failing job records its error in Result.Err and does not stop the
// others. Once ctx is cancelled no further jobs start and Run returns the
// context error along with the results gathered so far.
func (r *Runner) Run(ctx context.Context, jobs []*config.Config) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	sem := make(chan struct{}, r.workers)

	var wg sync.WaitGroup
	for i, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return results, ctx.Err()
		case sem <- struct{}{}:
		}
		// select picks at random when both cases are ready.
		if ctx.Err() != nil {
			<-sem
			break
		}

		wg.Add(1)
		go func(idx int, cfg *config.Config) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = r.runOne(ctx, cfg)
		}(i, job)
	}

	wg.Wait()
	return results, ctx.Err()
}

func (r *Runner) runOne(ctx context.Context, cfg *config.Config) *Result {
	res, err := Execute(ctx, cfg)
	if err != nil {
		return &Result{Name: cfg.Name, Config: cfg, Err: err}
	}
	if r.store != nil {
		id, err := r.store.Save(res.StorageRun())
		if err != nil {
			res.Err = err
			return res
		}
		res.RunID = id
	}
	return res
}

// Failed returns the results that carry an error.
func Failed(results []*Result) []*Result {
	var out []*Result
	for _, res := range results {
		if res != nil && res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}
