package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/polykit/internal/ndarray"
	"github.com/san-kum/polykit/internal/poly"
	"github.com/san-kum/polykit/internal/viz"
	"github.com/spf13/cobra"
)

func requireCoef() ([]float64, error) {
	if len(coefFlag) == 0 {
		return nil, fmt.Errorf("--coef is required")
	}
	return coefFlag, nil
}

func parseFloats(args []string) ([]float64, error) {
	vs := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		vs[i] = v
	}
	return vs, nil
}

func printCoefficients(label string, c []float64) {
	fmt.Println(viz.KeyValue(label, viz.FormatPolynomial(c, "x")))
	fmt.Println(viz.KeyValue("", "["+viz.FormatValues(c)+"]"))
}

func runEval(cmd *cobra.Command, args []string) error {
	c, err := requireCoef()
	if err != nil {
		return err
	}
	xs, err := parseFloats(args)
	if err != nil {
		return err
	}

	ys, err := poly.Evaluate(ndarray.FromSlice(xs), ndarray.FromSlice(c))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "X\tP(X)")
	for i, y := range ys.Raw() {
		fmt.Fprintf(w, "%g\t%.12g\n", xs[i], y)
	}
	return w.Flush()
}

func runRoots(cmd *cobra.Command, args []string) error {
	c, err := requireCoef()
	if err != nil {
		return err
	}
	roots, err := poly.Roots(c)
	if err != nil {
		return err
	}
	log.WithField("degree", len(c)-1).Debugf("found %d roots", len(roots))

	if realOnly {
		for _, r := range poly.RealRoots(roots, tol) {
			fmt.Printf("%.12g\n", r)
		}
		return nil
	}
	for _, r := range roots {
		fmt.Println(viz.FormatComplex(r))
	}
	return nil
}

func runFromRoots(cmd *cobra.Command, args []string) error {
	roots, err := parseFloats(args)
	if err != nil {
		return err
	}
	printCoefficients("p(x)", poly.FromRoots(roots))
	return nil
}

func runDeriv(cmd *cobra.Command, args []string) error {
	c, err := requireCoef()
	if err != nil {
		return err
	}
	d, err := poly.DifferentiateSeq(c, poly.Order(order), poly.Scale(scale))
	if err != nil {
		return err
	}
	printCoefficients("derivative", d)
	return nil
}

func runInteg(cmd *cobra.Command, args []string) error {
	c, err := requireCoef()
	if err != nil {
		return err
	}
	in, err := poly.IntegrateSeq(c,
		poly.Order(order),
		poly.Constants(constants...),
		poly.LowerBound(lbnd),
		poly.Scale(scale),
	)
	if err != nil {
		return err
	}
	printCoefficients("integral", in)
	return nil
}

func runDiv(cmd *cobra.Command, args []string) error {
	quo, rem, err := poly.Div(numFlag, denFlag)
	if err != nil {
		return err
	}
	printCoefficients("quotient", quo)
	printCoefficients("remainder", rem)
	return nil
}

func runArith(cmd *cobra.Command, args []string) error {
	if len(numFlag) == 0 || len(denFlag) == 0 {
		return fmt.Errorf("both --a and --b are required")
	}
	var out []float64
	switch cmd.Name() {
	case "add":
		out = poly.Add(numFlag, denFlag)
	case "sub":
		out = poly.Sub(numFlag, denFlag)
	case "mul":
		out = poly.Mul(numFlag, denFlag)
	default:
		return fmt.Errorf("unknown operation %q", cmd.Name())
	}
	printCoefficients(cmd.Name(), out)
	return nil
}

func runPow(cmd *cobra.Command, args []string) error {
	c, err := requireCoef()
	if err != nil {
		return err
	}
	out, err := poly.Pow(c, power, poly.DefaultMaxPower)
	if err != nil {
		return err
	}
	printCoefficients(fmt.Sprintf("p(x)^%d", power), out)
	return nil
}

func runTrim(cmd *cobra.Command, args []string) error {
	c, err := requireCoef()
	if err != nil {
		return err
	}
	out, err := poly.Trim(c, tol)
	if err != nil {
		return err
	}
	printCoefficients("trimmed", out)
	return nil
}
