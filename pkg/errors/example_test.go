package errors_test

import (
	"errors"
	"fmt"

	scErrors "github.com/ezoic/splitcheck/pkg/errors"
)

// Example_customErrorTypes demonstrates extracting a typed error from a chain
func Example_customErrorTypes() {
	dimErr := scErrors.NewDimensionError("TrainTestSplit", 3, 2, 0)
	wrappedErr := fmt.Errorf("splitting dataset: %w", dimErr)

	var dimensionErr *scErrors.DimensionError
	if errors.As(wrappedErr, &dimensionErr) {
		fmt.Printf("Dimension error: expected %d, got %d\n",
			dimensionErr.Expected, dimensionErr.Got)
	}
	fmt.Println(errors.Is(wrappedErr, scErrors.ErrDimensionMismatch))

	// Output: Dimension error: expected 3, got 2
	// true
}

// Example_errorComparison demonstrates sentinel and type checks side by side
func Example_errorComparison() {
	notFittedErr := scErrors.NewNotFittedError("LinearRegression", "Predict")
	valueErr := scErrors.NewValueError("TrainTestSplit", "test_size=1.5 should be in the (0, 1) range")

	if errors.Is(notFittedErr, scErrors.ErrNotFitted) {
		fmt.Println("Model not fitted")
	}

	var notFitted *scErrors.NotFittedError
	if errors.As(notFittedErr, &notFitted) {
		fmt.Printf("Model %s is not fitted for %s\n",
			notFitted.ModelName, notFitted.Method)
	}

	var valErr *scErrors.ValueError
	if errors.As(valueErr, &valErr) {
		fmt.Printf("Value error in %s: %s\n", valErr.Op, valErr.Message)
	}

	// Output: Model not fitted
	// Model LinearRegression is not fitted for Predict
	// Value error in TrainTestSplit: test_size=1.5 should be in the (0, 1) range
}

// Example_splitError shows the message for sizes that leave no training rows
func Example_splitError() {
	err := scErrors.NewSplitError("TrainTestSplit", 1, "0.2", "None",
		"the resulting train set will be empty")

	fmt.Println(err)
	fmt.Println(errors.Is(err, scErrors.ErrInvalidSplit))

	// Output: splitcheck: TrainTestSplit: with n_samples=1, test_size=0.2 and train_size=None, the resulting train set will be empty
	// true
}

// Example_errorLogging demonstrates the message carried into structured logs
func Example_errorLogging() {
	baseErr := scErrors.NewModelError("LinearRegression.Fit", "SVD did not converge",
		scErrors.ErrSingularMatrix)

	opErr := fmt.Errorf("variant no_split: %w", baseErr)

	// log.LogError(opErr, "demo failed") attaches "%+v" detail at debug level.
	fmt.Printf("Error: %v\n", opErr)

	// Output: Error: variant no_split: splitcheck: LinearRegression.Fit: SVD did not converge: singular matrix
}
