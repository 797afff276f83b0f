package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/polykit/internal/analysis"
	"github.com/san-kum/polykit/internal/batch"
	"github.com/san-kum/polykit/internal/config"
	"github.com/san-kum/polykit/internal/storage"
	"github.com/san-kum/polykit/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// loadFitConfig resolves preset, config file, positional samples file and
// explicitly set flags, in that order of precedence.
func loadFitConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) == 1 {
		cfg.Data.File = args[0]
		cfg.Data.Coeffs = nil
		if preset == "" && configFile == "" {
			cfg.Name = "fit"
		}
	}

	flags := cmd.Flags()
	if flags.Changed("degree") {
		cfg.Degree = fitDegree
		cfg.Terms = nil
	}
	if flags.Changed("terms") {
		cfg.Terms = fitTerms
	}
	if flags.Changed("rcond") {
		cfg.RCond = rcond
	}
	if flags.Changed("x-col") {
		cfg.Data.XCol = xCol
	}
	if flags.Changed("y-col") {
		cfg.Data.YCol = yCol
	}
	if flags.Changed("weights-col") {
		cfg.Data.WCol = weightsCol
	}
	if flags.Changed("name") {
		cfg.Name = runName
	}

	if cfg.Data.File == "" && len(cfg.Data.Coeffs) == 0 {
		return nil, fmt.Errorf("no samples: pass a CSV file, --config or --preset")
	}
	return cfg, nil
}

func runFit(cmd *cobra.Command, args []string) error {
	cfg, err := loadFitConfig(cmd, args)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"name":   cfg.Name,
		"degree": cfg.Degree,
		"terms":  cfg.Terms,
		"file":   cfg.Data.File,
	}).Debug("fitting")

	res, err := batch.Execute(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	warnDeficient(res)

	printFit(res)

	if showPlot {
		fmt.Println()
		fmt.Println(viz.PlotFit(res.X, res.Y, res.Coef, 70, 12, "samples (blue) and fit (red)"))
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(res.StorageRun())
		if err != nil {
			return err
		}
		log.WithField("run_id", runID).Info("saved run")
	}
	return nil
}

func warnDeficient(res *batch.Result) {
	if res.Info.Deficient() {
		log.WithFields(logrus.Fields{
			"name":  res.Name,
			"rank":  res.Info.Rank,
			"order": res.Info.Order,
		}).Warn("fit is rank deficient; coefficients may be poorly determined")
	}
}

func printFit(res *batch.Result) {
	fmt.Println(viz.Title.Render(res.Name))
	fmt.Println(viz.KeyValue("p(x)", viz.FormatPolynomial(res.Coef, "x")))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POWER\tCOEFFICIENT")
	for i, c := range res.Coef {
		fmt.Fprintf(w, "%d\t% .10g\n", i, c)
	}
	w.Flush()
	fmt.Println()

	printDiagnostics(res.Diagnostics)
}

func printDiagnostics(d analysis.Diagnostics) {
	fmt.Println(viz.KeyValue("samples", fmt.Sprintf("%d", d.N)))
	fmt.Println(viz.KeyValue("rank", fmt.Sprintf("%d", d.Rank)))
	fmt.Println(viz.KeyValue("cond", fmt.Sprintf("%.4g", d.Cond)))
	fmt.Println(viz.KeyValue("rss", fmt.Sprintf("%.6g", d.RSS)))
	fmt.Println(viz.KeyValue("rmse", fmt.Sprintf("%.6g", d.RMSE)))
	fmt.Println(viz.KeyValue("r²", fmt.Sprintf("%.8f", d.RSquared)))
	fmt.Println(viz.KeyValue("aic / bic", fmt.Sprintf("%.4f / %.4f", d.AIC, d.BIC)))
	fmt.Println(viz.KeyValue("residuals", fmt.Sprintf("mean %.3g  median %.3g  std %.3g  max|r| %.3g",
		d.ResidualMean, d.ResidualMedian, d.ResidualStd, d.MaxAbsResidual)))
}

func runSelect(cmd *cobra.Command, args []string) error {
	cfg, err := loadFitConfig(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-degree") {
		cfg.MaxDegree = maxDegree
	}
	if cmd.Flags().Changed("metric") {
		cfg.Metric = metric
	}

	sel, err := batch.Select(cmd.Context(), cfg, minDegree)
	if err != nil {
		return err
	}
	best, all := sel.Best, sel.Candidates
	log.WithFields(logrus.Fields{"metric": sel.Metric, "degree": best.Degree}).Debug("degree selected")

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DEGREE\tRANK\tRMSE\tR²\tAIC\tBIC\t")
	for _, c := range all {
		mark := ""
		if c.Degree == best.Degree {
			mark = "←"
		}
		d := c.Diagnostics
		fmt.Fprintf(tw, "%d\t%d\t%.4g\t%.6f\t%.3f\t%.3f\t%s\n", c.Degree, d.Rank, d.RMSE, d.RSquared, d.AIC, d.BIC, mark)
	}
	tw.Flush()

	fmt.Println()
	fmt.Println(viz.KeyValue("best", fmt.Sprintf("degree %d by %s", best.Degree, sel.Metric)))
	fmt.Println(viz.KeyValue("p(x)", viz.FormatPolynomial(best.Coef, "x")))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	jobs, err := config.LoadJobs(args[0])
	if err != nil {
		return fmt.Errorf("failed to load jobs: %w", err)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("%s defines no jobs", args[0])
	}

	runner := batch.NewRunner(workers)
	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runner.WithStore(st)
	}

	log.WithFields(logrus.Fields{"jobs": len(jobs), "workers": workers}).Debug("starting batch")
	results, err := runner.Run(cmd.Context(), jobs)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDEGREE\tRANK\tRMSE\tR²\tRUN")
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%s\n", res.Name, viz.Error.Render(res.Err.Error()))
			continue
		}
		warnDeficient(res)
		d := res.Diagnostics
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.4g\t%.6f\t%s\n", res.Name, d.Degree, d.Rank, d.RMSE, d.RSquared, res.RunID)
	}
	tw.Flush()

	if failed := batch.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d jobs failed", len(failed), len(results))
	}
	return nil
}

