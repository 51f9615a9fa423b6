package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezoic/splitcheck/internal/demo"
	"github.com/ezoic/splitcheck/internal/report"
)

func newPlotCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Chart the demo fits with and without a train/test split",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var results []*demo.Result
			for _, variant := range []string{demo.VariantNoSplit, demo.VariantSplit} {
				res, err := demo.Run(variant)
				if err != nil {
					return err
				}
				results = append(results, res)
			}

			if err := report.PlotFit(results, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plot saved as %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "fit.png", "image file to write (png, svg, pdf, eps, jpg)")
	return cmd
}
