package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezoic/splitcheck/internal/demo"
	"github.com/ezoic/splitcheck/pkg/log"
)

func newDemoCmd() *cobra.Command {
	var (
		split  bool
		export string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Fit a linear regression on a three-row dataset, with or without a train/test split",
		Long: `Fit ordinary least squares on X=[[1 1] [2 2] [3 3]], y=[2 3 4].

Without --split the model predicts the rows it was trained on. With --split a
test set is held out (test_size=0.2, random_state=42) and only those rows are
predicted, so the metrics describe unseen data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			variant := demo.VariantNoSplit
			if split {
				variant = demo.VariantSplit
			}

			res, err := demo.Run(variant)
			if err != nil {
				return err
			}
			ev, err := demo.Evaluate(res)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			coef := res.Model.Coef()
			fmt.Fprintf(out, "Variant: %s\n", res.Variant)
			if split {
				fmt.Fprintf(out, "Split: test_size=%g, random_state=%d\n", demo.TestSize, demo.RandomState)
			}
			fmt.Fprintf(out, "Train rows: %v\n", res.TrainIndices)
			fmt.Fprintf(out, "Predicted rows: %v\n", res.TestIndices)
			fmt.Fprintf(out, "Coefficients: [%.4f %.4f], intercept: %.4f\n", coef[0], coef[1], res.Model.GetIntercept())
			fmt.Fprintf(out, "Predictions: %s\n", demo.FormatPredictions(res.Predictions))
			fmt.Fprintf(out, "MSE: %.4f\n", ev.MSE)
			fmt.Fprintf(out, "MAE: %.4f\n", ev.MAE)
			fmt.Fprintf(out, "R²: %.4f\n", ev.R2)

			if export != "" {
				if err := res.Model.ExportToSKLearn(export); err != nil {
					return err
				}
				log.GetLoggerWithName("splitcheck").Info("Model exported", log.PathKey, export)
				fmt.Fprintf(out, "Model exported to %s\n", export)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&split, "split", false, "hold out a test set before fitting")
	cmd.Flags().StringVar(&export, "export", "", "write the fitted model as scikit-learn JSON to this file")
	return cmd
}
