package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var (
	dataDir string
	verbose bool

	// fit and select
	configFile string
	preset     string
	runName    string
	fitDegree  int
	fitTerms   []int
	rcond      float64
	xCol       int
	yCol       int
	weightsCol int
	saveRun    bool
	showPlot   bool
	minDegree  int
	maxDegree  int
	metric     string

	// batch
	workers int

	// coefficient operations
	coefFlag  []float64
	numFlag   []float64
	denFlag   []float64
	order     int
	scale     float64
	lbnd      float64
	constants []float64
	tol       float64
	power     int
	realOnly  bool

	// run inspection
	outPath   string
	braille   bool
	residuals bool
)

// main wires the polykit commands; with no subcommand it opens the
// interactive explorer on the built-in presets.
func main() {
	rootCmd := &cobra.Command{
		Use:   "polykit",
		Short: "power-series polynomial toolkit",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(os.Stderr)
			log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: explore,
	}
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".polykit", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	fitCmd := &cobra.Command{
		Use:   "fit [samples.csv]",
		Short: "least-squares polynomial fit",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFit,
	}
	addSampleFlags(fitCmd)
	fitCmd.Flags().IntVarP(&fitDegree, "degree", "d", 3, "polynomial degree")
	fitCmd.Flags().IntSliceVar(&fitTerms, "terms", nil, "fit only these powers of x")
	fitCmd.Flags().Float64Var(&rcond, "rcond", 0, "relative singular value cutoff (0 = default)")
	fitCmd.Flags().StringVar(&runName, "name", "", "run name")
	fitCmd.Flags().BoolVar(&saveRun, "save", false, "store the run")
	fitCmd.Flags().BoolVar(&showPlot, "plot", false, "plot samples and fit")

	selectCmd := &cobra.Command{
		Use:   "select [samples.csv]",
		Short: "pick a degree by information criterion",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSelect,
	}
	addSampleFlags(selectCmd)
	selectCmd.Flags().IntVar(&minDegree, "min-degree", 0, "smallest degree tried")
	selectCmd.Flags().IntVar(&maxDegree, "max-degree", 8, "largest degree tried")
	selectCmd.Flags().StringVar(&metric, "metric", "aic", "aic, bic or rmse")

	batchCmd := &cobra.Command{
		Use:   "batch [jobs.yaml]",
		Short: "run fit jobs concurrently",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&workers, "workers", 0, "concurrent jobs (0 = GOMAXPROCS)")
	batchCmd.Flags().BoolVar(&saveRun, "save", true, "store each run")

	evalCmd := &cobra.Command{
		Use:   "eval x...",
		Short: "evaluate a polynomial",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runEval,
	}
	addCoefFlag(evalCmd)

	rootsCmd := &cobra.Command{
		Use:   "roots",
		Short: "roots of a polynomial",
		RunE:  runRoots,
	}
	addCoefFlag(rootsCmd)
	rootsCmd.Flags().BoolVar(&realOnly, "real", false, "only real roots")
	rootsCmd.Flags().Float64Var(&tol, "tol", 1e-9, "imaginary tolerance for --real")

	fromRootsCmd := &cobra.Command{
		Use:   "fromroots r...",
		Short: "monic polynomial with the given roots",
		RunE:  runFromRoots,
	}

	derivCmd := &cobra.Command{
		Use:   "deriv",
		Short: "differentiate",
		RunE:  runDeriv,
	}
	addCoefFlag(derivCmd)
	derivCmd.Flags().IntVarP(&order, "order", "m", 1, "number of derivatives")
	derivCmd.Flags().Float64Var(&scale, "scale", 1, "chain rule factor per derivative")

	integCmd := &cobra.Command{
		Use:   "integ",
		Short: "integrate",
		RunE:  runInteg,
	}
	addCoefFlag(integCmd)
	integCmd.Flags().IntVarP(&order, "order", "m", 1, "number of integrals")
	integCmd.Flags().Float64SliceVar(&constants, "k", nil, "integration constants")
	integCmd.Flags().Float64Var(&lbnd, "lbnd", 0, "lower bound")
	integCmd.Flags().Float64Var(&scale, "scale", 1, "factor per integral")

	divCmd := &cobra.Command{
		Use:   "div",
		Short: "polynomial division",
		RunE:  runDiv,
	}
	divCmd.Flags().Float64SliceVar(&numFlag, "num", nil, "numerator coefficients, low to high")
	divCmd.Flags().Float64SliceVar(&denFlag, "den", nil, "denominator coefficients, low to high")
	divCmd.MarkFlagRequired("num")
	divCmd.MarkFlagRequired("den")

	arithCmds := []*cobra.Command{
		{Use: "add", Short: "sum of two polynomials", RunE: runArith},
		{Use: "sub", Short: "difference of two polynomials", RunE: runArith},
		{Use: "mul", Short: "product of two polynomials", RunE: runArith},
	}
	for _, c := range arithCmds {
		c.Flags().Float64SliceVar(&numFlag, "a", nil, "first polynomial")
		c.Flags().Float64SliceVar(&denFlag, "b", nil, "second polynomial")
	}

	powCmd := &cobra.Command{
		Use:   "pow",
		Short: "raise a polynomial to a power",
		RunE:  runPow,
	}
	addCoefFlag(powCmd)
	powCmd.Flags().IntVar(&power, "n", 2, "exponent")

	trimCmd := &cobra.Command{
		Use:   "trim",
		Short: "drop small trailing coefficients",
		RunE:  runTrim,
	}
	addCoefFlag(trimCmd)
	trimCmd.Flags().Float64Var(&tol, "tol", 0, "absolute tolerance")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&braille, "braille", false, "draw the curve with its roots on a Braille canvas")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	chartCmd := &cobra.Command{
		Use:   "chart [run_id]",
		Short: "render a run as an image",
		Args:  cobra.ExactArgs(1),
		RunE:  chartRun,
	}
	chartCmd.Flags().StringVarP(&outPath, "out", "o", "chart.svg", "output file; format follows the extension (.html is interactive)")
	chartCmd.Flags().BoolVar(&residuals, "residuals", false, "plot residuals instead of the fit")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		RunE:  listPresets,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive polynomial explorer",
		RunE:  explore,
	}
	addCoefFlag(exploreCmd)

	rootCmd.AddCommand(fitCmd, selectCmd, batchCmd)
	rootCmd.AddCommand(evalCmd, rootsCmd, fromRootsCmd, derivCmd, integCmd, divCmd, powCmd, trimCmd)
	rootCmd.AddCommand(arithCmds...)
	rootCmd.AddCommand(listCmd, showCmd, plotCmd, exportJSONCmd, chartCmd)
	rootCmd.AddCommand(presetsCmd, exploreCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Error(err)
		os.Exit(1)
	}
}

func addSampleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&xCol, "x-col", 0, "x column")
	cmd.Flags().IntVar(&yCol, "y-col", 1, "y column")
	cmd.Flags().IntVar(&weightsCol, "weights-col", -1, "weight column (-1 = unweighted)")
}

func addCoefFlag(cmd *cobra.Command) {
	cmd.Flags().Float64SliceVarP(&coefFlag, "coef", "c", nil, "coefficients, low to high")
}
