// Package metrics provides evaluation metrics for regression models.
//
//   - MSE: Mean Squared Error
//   - RMSE: Root Mean Squared Error
//   - MAE: Mean Absolute Error
//   - R2Score: coefficient of determination
//   - ExplainedVarianceScore: proportion of variance explained by the model
//
// Scores follow scikit-learn conventions, including its handling of the
// degenerate cases: R² is NaN for fewer than two samples, and a constant
// target scores 1 when predicted exactly and 0 otherwise.
//
// Example usage:
//
//	mse, err := metrics.MSE(yTrue, yPred)
//	r2, err := metrics.R2Score(yTrue, yPred)
//
//	// (n × 1) matrices, as returned by Predict
//	mse, err := metrics.MSEMatrix(yTrueMatrix, yPredMatrix)
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	scErrors "github.com/ezoic/splitcheck/pkg/errors"
)

func validate(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yTrue.Len() == 0 {
		return 0, scErrors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if yPred == nil || yPred.Len() != n {
		got := 0
		if yPred != nil {
			got = yPred.Len()
		}
		return 0, scErrors.NewDimensionError(op, n, got, 0)
	}
	return n, nil
}

// MSE calculates the Mean Squared Error between true and predicted values.
//
// Errors:
//   - ValueError: if yTrue is empty
//   - DimensionError: if yTrue and yPred have different lengths
//
// Example:
//
//	mse, err := metrics.MSE(yTrue, yPred)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("MSE: %.4f\n", mse)
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}

	return sum / float64(n), nil
}

// MSEMatrix calculates MSE for (n × 1) column matrices.
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	yTrueVec, err := ColumnVector("MSEMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	yPredVec, err := ColumnVector("MSEMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return MSE(yTrueVec, yPredVec)
}

// ColumnVector copies an (n × 1) matrix into a vector.
func ColumnVector(op string, m mat.Matrix) (*mat.VecDense, error) {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, scErrors.NewValueError(op, "empty matrix")
	}
	if c != 1 {
		return nil, scErrors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}
	return mat.NewVecDense(r, mat.Col(nil, 0, m)), nil
}

// RMSE calculates the Root Mean Squared Error, in the units of the target.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE calculates the Mean Absolute Error between true and predicted values.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}

	return sum / float64(n), nil
}

// R2Score calculates the coefficient of determination (R²).
//
// 1 is a perfect fit, 0 is no better than predicting the mean, and negative
// values are worse than the mean. With fewer than two samples R² is not
// defined and NaN is returned without an error. When yTrue is constant the
// score is 1 for an exact prediction and 0 otherwise.
//
// Example:
//
//	r2, err := metrics.R2Score(yTrue, yPred)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("R² Score: %.4f\n", r2)
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if n < 2 {
		return math.NaN(), nil
	}

	yMean := stat.Mean(mat.Col(nil, 0, yTrue), nil)

	// R² = 1 - RSS/TSS
	var tss, rss float64
	for i := 0; i < n; i++ {
		t := yTrue.AtVec(i)
		p := yPred.AtVec(i)
		tss += (t - yMean) * (t - yMean)
		rss += (t - p) * (t - p)
	}

	return finiteScore(rss, tss), nil
}

// ExplainedVarianceScore calculates 1 - Var(yTrue - yPred) / Var(yTrue).
// Unlike R² it ignores a constant offset in the predictions.
func ExplainedVarianceScore(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("ExplainedVarianceScore", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if n < 2 {
		return math.NaN(), nil
	}

	diff := make([]float64, n)
	for i := range diff {
		diff[i] = yTrue.AtVec(i) - yPred.AtVec(i)
	}

	varYTrue := stat.PopVariance(mat.Col(nil, 0, yTrue), nil)
	varDiff := stat.PopVariance(diff, nil)

	return finiteScore(varDiff, varYTrue), nil
}

// finiteScore returns 1 - num/den, mapping the den == 0 case to 1 or 0.
func finiteScore(num, den float64) float64 {
	if den == 0 {
		if num == 0 {
			return 1
		}
		return 0
	}
	return 1 - num/den
}
