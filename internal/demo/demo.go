// Package demo runs the two train/test split demonstrations on a fixed
// three-row dataset.
//
// RunWithoutSplit fits and predicts on the same rows, so its predictions say
// nothing about generalisation. RunWithSplit holds rows out with a seeded
// split and predicts only those.
package demo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/splitcheck/linear"
	"github.com/ezoic/splitcheck/metrics"
	"github.com/ezoic/splitcheck/model_selection"
	scErrors "github.com/ezoic/splitcheck/pkg/errors"
	"github.com/ezoic/splitcheck/pkg/log"
)

// Variant names.
const (
	VariantNoSplit = "no_split"
	VariantSplit   = "split"
)

// Split parameters used by RunWithSplit.
const (
	TestSize    = 0.2
	RandomState = 42
)

// Dataset returns the feature matrix [[1 1] [2 2] [3 3]] and target [2 3 4].
// Every call returns fresh copies.
func Dataset() (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(3, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
	})
	y := mat.NewVecDense(3, []float64{2, 3, 4})
	return X, y
}

// Result is the outcome of one demo run. X and YTrue are the rows the model
// predicted; TrainIndices and TestIndices refer to rows of Dataset.
type Result struct {
	Variant      string
	Model        *linear.LinearRegression
	X            *mat.Dense
	YTrue        *mat.VecDense
	Predictions  mat.Matrix
	TrainIndices []int
	TestIndices  []int
}

// RunWithoutSplit fits on all rows and predicts the same rows.
func RunWithoutSplit() (*Result, error) {
	X, y := Dataset()
	logger := log.GetLoggerWithName("demo").With(log.ComponentKey, VariantNoSplit)

	lr := linear.NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		return nil, err
	}

	predictions, err := lr.Predict(X)
	if err != nil {
		return nil, err
	}
	logger.Info("Predicted training rows", log.PredsKey, X.RawMatrix().Rows)

	all := []int{0, 1, 2}
	return &Result{
		Variant:      VariantNoSplit,
		Model:        lr,
		X:            X,
		YTrue:        y,
		Predictions:  predictions,
		TrainIndices: all,
		TestIndices:  all,
	}, nil
}

// RunWithSplit holds out a test set with test_size=0.2 and random_state=42,
// fits on the rest and predicts the held-out rows.
func RunWithSplit() (*Result, error) {
	X, y := Dataset()
	logger := log.GetLoggerWithName("demo").With(log.ComponentKey, VariantSplit)

	split, err := model_selection.TrainTestSplit(X, y,
		model_selection.WithTestSize(TestSize),
		model_selection.WithRandomState(RandomState),
	)
	if err != nil {
		return nil, err
	}
	logger.Info("Split dataset",
		log.RandomStateKey, RandomState,
		log.TestSizeKey, TestSize,
		"train_indices", split.TrainIndices,
		"test_indices", split.TestIndices,
	)

	lr := linear.NewLinearRegression()
	if err := lr.Fit(split.XTrain, split.YTrain); err != nil {
		return nil, err
	}

	predictions, err := lr.Predict(split.XTest)
	if err != nil {
		return nil, err
	}
	logger.Info("Predicted held-out rows", log.PredsKey, len(split.TestIndices))

	return &Result{
		Variant:      VariantSplit,
		Model:        lr,
		X:            split.XTest,
		YTrue:        split.YTest,
		Predictions:  predictions,
		TrainIndices: split.TrainIndices,
		TestIndices:  split.TestIndices,
	}, nil
}

// Run dispatches on the variant name.
func Run(variant string) (*Result, error) {
	switch variant {
	case VariantNoSplit:
		return RunWithoutSplit()
	case VariantSplit:
		return RunWithSplit()
	default:
		return nil, errUnknownVariant(variant)
	}
}

// Evaluation holds regression metrics on the rows a Result predicted.
// R2 is NaN when fewer than two rows were predicted.
type Evaluation struct {
	MSE float64
	MAE float64
	R2  float64
}

// Evaluate scores r.Predictions against r.YTrue.
func Evaluate(r *Result) (Evaluation, error) {
	yPred, err := metrics.ColumnVector("Evaluate", r.Predictions)
	if err != nil {
		return Evaluation{}, err
	}

	var ev Evaluation
	if ev.MSE, err = metrics.MSE(r.YTrue, yPred); err != nil {
		return Evaluation{}, err
	}
	if ev.MAE, err = metrics.MAE(r.YTrue, yPred); err != nil {
		return Evaluation{}, err
	}
	if ev.R2, err = metrics.R2Score(r.YTrue, yPred); err != nil {
		return Evaluation{}, err
	}
	return ev, nil
}

// printPrecision is the number of fraction digits numpy prints by default.
const printPrecision = 8

// FormatPredictions renders the first column of m the way numpy prints a
// float array: values rounded to 8 decimals, trailing zeros dropped, and
// elements padded to a common width on both sides of the decimal point,
// e.g. "[2. 3. 4.]" or "[1.5  2.25]". Like numpy it switches every element
// to scientific notation when a non-zero magnitude is at least 1e8 or below
// 1e-4, or when the largest and smallest differ by more than 1e3, e.g.
// "[1.e-05 1.e+00]".
func FormatPredictions(m mat.Matrix) string {
	r, _ := m.Dims()
	vals := make([]float64, r)
	for i := range vals {
		vals[i] = m.At(i, 0)
	}
	exp := scientific(vals)

	parts := make([]numParts, r)
	intWidth, fracWidth, expWidth := 0, 0, 0
	for i, v := range vals {
		parts[i] = splitFloat(v, exp)
		if parts[i].finite {
			intWidth = max(intWidth, len(parts[i].whole))
			fracWidth = max(fracWidth, len(parts[i].frac))
			expWidth = max(expWidth, len(parts[i].exp)-1)
		}
	}

	elems := make([]string, r)
	width := 0
	for i, p := range parts {
		switch {
		case !p.finite:
			elems[i] = p.whole
		case exp:
			digits := p.exp[1:]
			elems[i] = fmt.Sprintf("%*s.%s%se%c%s%s", intWidth, p.whole,
				p.frac, strings.Repeat("0", fracWidth-len(p.frac)),
				p.exp[0], strings.Repeat("0", expWidth-len(digits)), digits)
		default:
			elems[i] = fmt.Sprintf("%*s.%-*s", intWidth, p.whole, fracWidth, p.frac)
		}
		width = max(width, len(elems[i]))
	}
	for i := range elems {
		elems[i] = fmt.Sprintf("%*s", width, elems[i])
	}
	return "[" + strings.Join(elems, " ") + "]"
}

// scientific reports whether numpy would print vals in exponent notation.
// Zeros and non-finite values do not take part.
func scientific(vals []float64) bool {
	lo, hi := math.Inf(1), 0.0
	for _, v := range vals {
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		a := math.Abs(v)
		lo, hi = math.Min(lo, a), math.Max(hi, a)
	}
	if hi == 0 {
		return false
	}
	return hi >= 1e8 || lo < 1e-4 || hi/lo > 1e3
}

// numParts holds the printable pieces of one element. exp is the signed
// exponent, e.g. "-05", and is empty in fixed-point mode.
type numParts struct {
	whole, frac, exp string
	finite         bool
}

// splitFloat returns the integer and trimmed fraction digits of v rounded
// to printPrecision decimals, or to printPrecision mantissa decimals when
// exp is set. Non-finite values come back whole.
func splitFloat(v float64, exp bool) numParts {
	switch {
	case math.IsNaN(v):
		return numParts{whole: "nan"}
	case math.IsInf(v, 1):
		return numParts{whole: "inf"}
	case math.IsInf(v, -1):
		return numParts{whole: "-inf"}
	}
	if !exp {
		s := strconv.FormatFloat(v, 'f', printPrecision, 64)
		intPart, frac, _ := strings.Cut(s, ".")
		return numParts{whole: intPart, frac: strings.TrimRight(frac, "0"), finite: true}
	}

	// Shortest round-trip digits, capped at printPrecision.
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, e, _ := strings.Cut(s, "e")
	intPart, frac, _ := strings.Cut(mant, ".")
	if len(frac) > printPrecision {
		s = strconv.FormatFloat(v, 'e', printPrecision, 64)
		mant, e, _ = strings.Cut(s, "e")
		intPart, frac, _ = strings.Cut(mant, ".")
	}
	return numParts{whole: intPart, frac: strings.TrimRight(frac, "0"), exp: e, finite: true}
}

func errUnknownVariant(variant string) error {
	return scErrors.NewValueError("demo.Run",
		fmt.Sprintf("unknown variant %q, want %q or %q", variant, VariantNoSplit, VariantSplit))
}
