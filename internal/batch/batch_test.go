package batch_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/polykit/internal/batch"
	"github.com/san-kum/polykit/internal/config"
	"github.com/san-kum/polykit/internal/storage"
)

var _ = Describe("Execute", func() {
	It("recovers the generating cubic", func() {
		res, err := batch.Execute(context.Background(), config.GetPreset("cubic"))
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Coef).To(HaveLen(4))
		for i, want := range []float64{0, 2, -3, 1} {
			Expect(res.Coef[i]).To(BeNumerically("~", want, 1e-8))
		}
		Expect(res.Info.Rank).To(Equal(4))
		Expect(res.Info.Deficient()).To(BeFalse())
		Expect(res.Diagnostics.RSquared).To(BeNumerically("~", 1, 1e-12))
	})

	It("fits only the requested terms", func() {
		res, err := batch.Execute(context.Background(), config.GetPreset("odd_quintic"))
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Coef).To(HaveLen(6))
		Expect(res.Coef[0]).To(BeZero())
		Expect(res.Coef[2]).To(BeZero())
		Expect(res.Coef[4]).To(BeZero())
		Expect(res.Coef[3]).To(BeNumerically("~", -0.5, 1e-8))
	})

	It("reads samples from a CSV file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "line.csv")
		Expect(os.WriteFile(path, []byte("x,y,w\n0,1,1\n1,3,1\n2,5,1\n3,100,0\n"), 0644)).To(Succeed())

		cfg := config.DefaultConfig()
		cfg.Name = "file"
		cfg.Degree = 1
		cfg.Data.File = path
		cfg.Data.WCol = 2

		res, err := batch.Execute(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.W).To(Equal([]float64{1, 1, 1, 0}))
		Expect(res.Coef[0]).To(BeNumerically("~", 1, 1e-10))
		Expect(res.Coef[1]).To(BeNumerically("~", 2, 1e-10))
	})

	It("rejects invalid configurations", func() {
		cfg := config.GetPreset("line")
		cfg.Degree = -2

		_, err := batch.Execute(context.Background(), cfg)
		Expect(err).To(MatchError(config.ErrInvalidConfig))
	})

	It("reports missing sample files", func() {
		cfg := config.DefaultConfig()
		cfg.Data.File = filepath.Join(GinkgoT().TempDir(), "missing.csv")

		_, err := batch.Execute(context.Background(), cfg)
		Expect(err).To(MatchError(os.ErrNotExist))
	})
})

var _ = Describe("Select", func() {
	It("searches up to max_degree ranked by the configured metric", func() {
		path := filepath.Join(GinkgoT().TempDir(), "select.yaml")
		Expect(os.WriteFile(path, []byte(`name: sel
max_degree: 3
metric: rmse
data:
  coeffs: [1, -2, 0.5]
  samples: 40
  start: -4
  stop: 4
  noise: 0.25
  seed: 7
`), 0644)).To(Succeed())

		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())

		sel, err := batch.Select(context.Background(), cfg, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(sel.Metric).To(Equal("rmse"))
		Expect(sel.Candidates).To(HaveLen(4))
		Expect(sel.Candidates[3].Degree).To(Equal(3))
		// Residual error never grows with the degree, so rmse picks the largest.
		Expect(sel.Best.Degree).To(Equal(3))
	})

	It("honours a penalized metric", func() {
		cfg := config.GetPreset("noisy_quadratic")
		cfg.MaxDegree = 5
		cfg.Metric = "bic"

		sel, err := batch.Select(context.Background(), cfg, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(sel.Candidates).To(HaveLen(5))
		Expect(sel.Candidates[0].Degree).To(Equal(1))
		Expect(sel.Best.Degree).To(BeNumerically(">=", 2))
		for _, c := range sel.Candidates {
			Expect(sel.Best.Diagnostics.BIC).To(BeNumerically("<=", c.Diagnostics.BIC))
		}
	})

	It("rejects a minimum above max_degree", func() {
		cfg := config.GetPreset("line")
		cfg.MaxDegree = 2

		_, err := batch.Select(context.Background(), cfg, 3)
		Expect(err).To(MatchError(config.ErrInvalidConfig))
	})
})

var _ = Describe("Runner", func() {
	var jobs []*config.Config

	BeforeEach(func() {
		jobs = nil
		for deg := 0; deg < 6; deg++ {
			cfg := config.GetPreset("noisy_quadratic")
			cfg.Name = fmt.Sprintf("deg-%d", deg)
			cfg.Degree = deg
			jobs = append(jobs, cfg)
		}
	})

	It("returns results in job order", func() {
		results, err := batch.NewRunner(3).Run(context.Background(), jobs)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(len(jobs)))

		for i, res := range results {
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Name).To(Equal(jobs[i].Name))
			Expect(res.Coef).To(HaveLen(i + 1))
		}
		Expect(batch.Failed(results)).To(BeEmpty())
	})

	It("records failures without stopping other jobs", func() {
		jobs[2].Metric = "unknown"

		results, err := batch.NewRunner(0).Run(context.Background(), jobs)
		Expect(err).NotTo(HaveOccurred())

		failed := batch.Failed(results)
		Expect(failed).To(HaveLen(1))
		Expect(failed[0].Name).To(Equal("deg-2"))
		Expect(results[3].Err).NotTo(HaveOccurred())
	})

	It("saves every successful run to the store", func() {
		st := storage.New(GinkgoT().TempDir())
		results, err := batch.NewRunner(2).WithStore(st).Run(context.Background(), jobs)
		Expect(err).NotTo(HaveOccurred())

		for _, res := range results {
			Expect(res.RunID).NotTo(BeEmpty())
			coef, err := st.LoadCoefficients(res.RunID)
			Expect(err).NotTo(HaveOccurred())
			Expect(coef).To(Equal(res.Coef))
		}

		runs, err := st.List()
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(len(jobs)))
	})

	It("stops launching jobs once cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results, err := batch.NewRunner(2).Run(ctx, jobs)
		Expect(err).To(MatchError(context.Canceled))
		for _, res := range results {
			Expect(res).To(BeNil())
		}
	})

	It("does not start a job when cancellation races a free slot", func() {
		for attempt := 0; attempt < 50; attempt++ {
			ctx := &lateCancel{Context: context.Background(), done: make(chan struct{})}
			close(ctx.done)

			results, err := batch.NewRunner(2).Run(ctx, jobs)
			Expect(err).To(MatchError(context.Canceled))
			for _, res := range results {
				Expect(res).To(BeNil())
			}
		}
	})
})

// lateCancel is already done but reports its error only from the second
// Err call on, like a context cancelled right after the first check.
type lateCancel struct {
	context.Context
	done  chan struct{}
	calls atomic.Int32
}

func (c *lateCancel) Done() <-chan struct{} { return c.done }

func (c *lateCancel) Err() error {
	if c.calls.Add(1) == 1 {
		return nil
	}
	return context.Canceled
}
