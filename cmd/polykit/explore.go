package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/polykit/internal/config"
	"github.com/san-kum/polykit/internal/viz"
	"github.com/spf13/cobra"
)

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDEGREE\tSAMPLES\tRANGE\tNOISE\tPOLYNOMIAL")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t[%g, %g]\t%g\t%s\n",
			name, p.Degree, p.Data.Samples, p.Data.Start, p.Data.Stop, p.Data.Noise,
			viz.FormatPolynomial(p.Data.Coeffs, "x"))
	}
	return w.Flush()
}

func explore(cmd *cobra.Command, args []string) error {
	var entries []viz.Entry
	if len(coefFlag) > 0 {
		entries = append(entries, viz.Entry{Name: "custom", Coef: coefFlag, Lo: -2, Hi: 2})
	} else {
		for _, name := range config.ListPresets() {
			p := config.GetPreset(name)
			entries = append(entries, viz.Entry{
				Name: name,
				Coef: p.Data.Coeffs,
				Lo:   p.Data.Start,
				Hi:   p.Data.Stop,
			})
		}
	}

	final, err := viz.RunExplorer(entries)
	if err != nil {
		return err
	}
	if len(final) == 0 {
		return nil
	}
	fmt.Println(viz.KeyValue("p(x)", viz.FormatPolynomial(final, "x")))
	fmt.Println(viz.KeyValue("", "["+viz.FormatValues(final)+"]"))
	return nil
}
