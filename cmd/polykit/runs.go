package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/polykit/internal/analysis"
	"github.com/san-kum/polykit/internal/export"
	"github.com/san-kum/polykit/internal/poly"
	"github.com/san-kum/polykit/internal/storage"
	"github.com/san-kum/polykit/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDEGREE\tSAMPLES\tRMSE\tR²")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4g\t%.6f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Degree,
			run.Samples,
			run.Diagnostics.RMSE,
			run.Diagnostics.RSquared,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	coef, err := st.LoadCoefficients(runID)
	if err != nil {
		return err
	}
	x, y, _, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(meta.ID))
	fmt.Println(viz.KeyValue("name", meta.Name))
	fmt.Println(viz.KeyValue("source", meta.Source))
	fmt.Println(viz.KeyValue("saved", meta.Timestamp.Format("2006-01-02 15:04:05")))
	if len(meta.Terms) > 0 {
		fmt.Println(viz.KeyValue("terms", fmt.Sprint(meta.Terms)))
	}
	fmt.Println(viz.KeyValue("weighted", fmt.Sprint(meta.Weighted)))
	fmt.Println(viz.KeyValue("p(x)", viz.FormatPolynomial(coef, "x")))
	fmt.Println(viz.KeyValue("singular", viz.FormatValues(meta.SingularValues)))
	fmt.Println()
	printDiagnostics(meta.Diagnostics)

	res := analysis.Residuals(x, y, coef)
	abs := make([]float64, len(res))
	for i, r := range res {
		abs[i] = math.Abs(r)
	}
	fmt.Println(viz.KeyValue("|residual|", viz.Sparkline(abs, 50)))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	coef, err := st.LoadCoefficients(runID)
	if err != nil {
		return err
	}
	x, y, _, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if braille {
		lo, hi := sampleRange(x)
		roots, err := poly.Roots(coef)
		if err != nil {
			return err
		}
		fmt.Println(viz.Title.Render(meta.Name))
		fmt.Print(viz.RenderCurve(coef, lo, hi, 60, 12, poly.RealRoots(roots, 1e-9)))
		return nil
	}

	caption := fmt.Sprintf("%s: samples (blue) and degree %d fit (red)", meta.Name, meta.Degree)
	fmt.Println(viz.PlotFit(x, y, coef, 80, 15, caption))
	fmt.Println()
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.ExportJSON(args[0], outPath); err != nil {
		return err
	}
	if outPath != "" && outPath != "-" {
		log.WithField("path", outPath).Info("exported run")
	}
	return nil
}

func chartRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	coef, err := st.LoadCoefficients(runID)
	if err != nil {
		return err
	}
	x, y, _, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(outPath), ".html") && !residuals {
		if err := export.SaveHTML(outPath, x, y, coef, export.ChartOptions{Title: meta.Name}); err != nil {
			return err
		}
		log.WithField("path", outPath).Info("wrote interactive chart")
		return nil
	}

	var chart *plot.Plot
	if residuals {
		chart, err = export.ResidualChart(x, analysis.Residuals(x, y, coef), meta.Name+" residuals")
	} else {
		var roots []complex128
		if roots, err = poly.Roots(coef); err != nil {
			return err
		}
		chart, err = export.Chart(x, y, coef, export.ChartOptions{
			Title: meta.Name,
			Roots: poly.RealRoots(roots, 1e-9),
		})
	}
	if err != nil {
		return err
	}
	if err := export.Save(chart, outPath, export.DefaultWidth, export.DefaultHeight); err != nil {
		return err
	}

	log.WithField("path", outPath).Info("wrote chart")
	return nil
}

func sampleRange(x []float64) (lo, hi float64) {
	if len(x) == 0 {
		return -1, 1
	}
	lo, hi = x[0], x[0]
	for _, v := range x {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return lo, hi
}
