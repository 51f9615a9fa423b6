// Package linear provides ordinary least squares linear regression.
//
// LinearRegression reproduces scikit-learn's LinearRegression:
//
//   - X and y are centred when an intercept is fitted
//   - coefficients are the minimum-norm least-squares solution, computed from
//     the SVD of the centred design matrix
//   - rank-deficient inputs (collinear features, fewer rows than features)
//     are fitted, not rejected
//
// Example usage:
//
//	lr := linear.NewLinearRegression()
//	if err := lr.Fit(X, y); err != nil {
//		return err
//	}
//	predictions, err := lr.Predict(XTest)
//
// Fitted models can be exchanged with Python through the scikit-learn JSON
// format:
//
//	err = lr.ExportToSKLearn("model.json")
//	err = lr.LoadFromSKLearn("sklearn_model.json")
package linear

import (
	"io"
	"math"
	"os"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ezoic/splitcheck/core/model"
	"github.com/ezoic/splitcheck/metrics"
	scErrors "github.com/ezoic/splitcheck/pkg/errors"
	"github.com/ezoic/splitcheck/pkg/log"
)

// LinearRegression is an ordinary least squares linear model.
type LinearRegression struct {
	State          *model.StateManager // Fitted state and training shape
	Weights        *mat.VecDense       // Coefficients, one per feature
	Intercept      float64             // Zero when FitIntercept is false
	NFeatures      int                 // Number of features seen in Fit
	Rank           int                 // Effective rank of the (centred) design matrix
	SingularValues []float64           // Singular values of the (centred) design matrix
	FitIntercept   bool                // Whether an intercept is learned
	logger         log.Logger
}

// Option configures a LinearRegression.
type Option func(*LinearRegression)

// WithFitIntercept sets whether to learn the intercept. Default true.
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.FitIntercept = fit
	}
}

// NewLinearRegression creates an untrained linear regression model.
//
//	lr := linear.NewLinearRegression()
//	err := lr.Fit(X, y)
//	predictions, err := lr.Predict(XTest)
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		State:        model.NewStateManager(),
		FitIntercept: true,
	}
	for _, opt := range opts {
		opt(lr)
	}

	lr.logger = log.GetLoggerWithName("linear").With(
		log.ModelNameKey, "LinearRegression",
		log.ComponentKey, "linear",
	)

	return lr
}

// Fit trains the model on X (n_samples × n_features) and y (n_samples × 1).
//
// Errors:
//   - ErrEmptyData: if X is empty
//   - DimensionError: if X and y have different numbers of rows
//   - ValueError: if y has more than one column
//   - ErrSingularMatrix: if the SVD fails to converge
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer scErrors.Recover(&err, "LinearRegression.Fit")

	startTime := time.Now()
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return scErrors.NewModelError("LinearRegression.Fit", "empty data", scErrors.ErrEmptyData)
	}
	if ry != r {
		return scErrors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return scErrors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	lr.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	xWork := mat.DenseCopyOf(X)
	yWork := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yWork.SetVec(i, y.At(i, 0))
	}

	// Centre so the intercept drops out of the least-squares problem.
	xOffset := make([]float64, c)
	var yOffset float64
	if lr.FitIntercept {
		col := make([]float64, r)
		for j := 0; j < c; j++ {
			mat.Col(col, j, xWork)
			xOffset[j] = stat.Mean(col, nil)
			for i := 0; i < r; i++ {
				xWork.Set(i, j, col[i]-xOffset[j])
			}
		}
		yOffset = stat.Mean(yWork.RawVector().Data, nil)
		for i := 0; i < r; i++ {
			yWork.SetVec(i, yWork.AtVec(i)-yOffset)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(xWork, mat.SVDThin); !ok {
		return scErrors.NewModelError("LinearRegression.Fit", "SVD did not converge", scErrors.ErrSingularMatrix)
	}

	// Same cutoff as numpy.linalg.lstsq.
	rcond := math.Nextafter(1, 2) - 1
	rcond *= float64(max(r, c))
	rank := svd.Rank(rcond)

	weights := mat.NewVecDense(c, nil)
	if rank > 0 {
		svd.SolveVecTo(weights, yWork, rank)
	}

	lr.NFeatures = c
	lr.Rank = rank
	lr.SingularValues = svd.Values(nil)
	lr.Weights = weights
	lr.Intercept = 0
	if lr.FitIntercept {
		lr.Intercept = yOffset - mat.Dot(mat.NewVecDense(c, xOffset), weights)
	}

	lr.State.SetFitted()
	lr.State.SetDimensions(lr.NFeatures, r)

	lr.logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
		log.SamplesKey, r,
		log.FeaturesKey, c,
		"rank", rank,
	)

	return nil
}

// Predict returns X·coef + intercept as an (n_samples × 1) matrix.
//
// Errors:
//   - NotFittedError: if the model hasn't been trained yet
//   - DimensionError: if X has a different number of features than in Fit
func (lr *LinearRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer scErrors.Recover(&err, "LinearRegression.Predict")

	if !lr.State.IsFitted() {
		return nil, scErrors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, scErrors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	lr.logger.Debug("Prediction started",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	var yHat mat.VecDense
	yHat.MulVec(X, lr.Weights)

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		predictions.Set(i, 0, yHat.AtVec(i)+lr.Intercept)
	}

	lr.logger.Debug("Prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PredsKey, r,
	)

	return predictions, nil
}

// Coef returns a copy of the learned coefficients, or nil before Fit.
func (lr *LinearRegression) Coef() []float64 {
	if lr.Weights == nil {
		return nil
	}
	return mat.Col(nil, 0, lr.Weights)
}

// GetIntercept returns the learned intercept
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.State.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// Score returns the coefficient of determination R² of the prediction.
func (lr *LinearRegression) Score(X, y mat.Matrix) (_ float64, err error) {
	defer scErrors.Recover(&err, "LinearRegression.Score")
	if !lr.State.IsFitted() {
		return 0, scErrors.NewNotFittedError("LinearRegression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	yTrue := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrue.SetVec(i, y.At(i, 0))
	}
	rp, _ := yPred.Dims()
	yPredVec := mat.NewVecDense(rp, nil)
	for i := 0; i < rp; i++ {
		yPredVec.SetVec(i, yPred.At(i, 0))
	}

	return metrics.R2Score(yTrue, yPredVec)
}

// LoadFromSKLearn loads a model from a JSON file exported from scikit-learn.
func (lr *LinearRegression) LoadFromSKLearn(filename string) (err error) {
	defer scErrors.Recover(&err, "LinearRegression.LoadFromSKLearn")
	file, err := os.Open(filename)
	if err != nil {
		return scErrors.Wrapf(err, "failed to open file %s", filename)
	}
	defer func() { _ = file.Close() }()

	return lr.LoadFromSKLearnReader(file)
}

// LoadFromSKLearnReader loads a scikit-learn model from r.
func (lr *LinearRegression) LoadFromSKLearnReader(r io.Reader) (err error) {
	defer scErrors.Recover(&err, "LinearRegression.LoadFromSKLearnReader")

	skModel, err := model.LoadSKLearnModelFromReader(r)
	if err != nil {
		return scErrors.Wrap(err, "failed to load sklearn model")
	}

	params, err := model.LoadLinearRegressionParams(skModel)
	if err != nil {
		return scErrors.Wrap(err, "failed to load linear regression params")
	}

	lr.NFeatures = params.NFeatures
	lr.Intercept = params.Intercept
	lr.Rank = params.Rank
	lr.SingularValues = nil
	lr.Weights = mat.NewVecDense(len(params.Coefficients), params.Coefficients)

	lr.State.SetFitted()
	// Sample count is not stored in the file.
	lr.State.SetDimensions(lr.NFeatures, 0)

	return nil
}

// ExportToSKLearn writes the model to filename in scikit-learn JSON format.
func (lr *LinearRegression) ExportToSKLearn(filename string) (err error) {
	defer scErrors.Recover(&err, "LinearRegression.ExportToSKLearn")
	if !lr.State.IsFitted() {
		return scErrors.NewNotFittedError("LinearRegression", "ExportToSKLearn")
	}

	file, err := os.Create(filename)
	if err != nil {
		return scErrors.Wrapf(err, "failed to create file %s", filename)
	}
	defer func() { _ = file.Close() }()

	return lr.ExportToSKLearnWriter(file)
}

// ExportToSKLearnWriter writes the model to w in scikit-learn JSON format.
func (lr *LinearRegression) ExportToSKLearnWriter(w io.Writer) (err error) {
	defer scErrors.Recover(&err, "LinearRegression.ExportToSKLearnWriter")
	if !lr.State.IsFitted() {
		return scErrors.NewNotFittedError("LinearRegression", "ExportToSKLearnWriter")
	}

	params := model.SKLearnLinearRegressionParams{
		Coefficients: lr.Coef(),
		Intercept:    lr.Intercept,
		NFeatures:    lr.NFeatures,
		Rank:         lr.Rank,
	}

	return model.ExportSKLearnModel("LinearRegression", params, w)
}

// IsFitted returns whether the model has been fitted.
func (lr *LinearRegression) IsFitted() bool {
	return lr.State.IsFitted()
}

// GetParams returns the model's hyperparameters.
func (lr *LinearRegression) GetParams() map[string]any {
	return map[string]any{
		"fit_intercept": lr.FitIntercept,
		"n_features":    lr.NFeatures,
		"fitted":        lr.State.IsFitted(),
	}
}

// SetParams sets the model's hyperparameters. Only fit_intercept is settable.
func (lr *LinearRegression) SetParams(params map[string]any) error {
	for k, v := range params {
		switch k {
		case "fit_intercept":
			b, ok := v.(bool)
			if !ok {
				return scErrors.NewValueError("LinearRegression.SetParams", "fit_intercept must be a bool")
			}
			lr.FitIntercept = b
		default:
			return scErrors.NewValueError("LinearRegression.SetParams", "unknown parameter "+k)
		}
	}
	return nil
}

var _ model.Regressor = (*LinearRegression)(nil)
