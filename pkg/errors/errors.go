// Package errors defines the error types shared by the splitcheck packages.
//
// It builds on github.com/cockroachdb/errors so that wrapped errors keep stack
// traces (visible with "%+v") while remaining compatible with the standard
// errors.Is / errors.As helpers:
//
//	if err := lr.Fit(X, y); err != nil {
//		var dimErr *errors.DimensionError
//		if errors.As(err, &dimErr) {
//			// handle shape mismatch
//		}
//	}
package errors

import (
	"fmt"

	cerrors "github.com/cockroachdb/errors"
)

const prefix = "splitcheck"

// Sentinel errors. Typed errors report Is() == true against the matching sentinel.
var (
	ErrNotFitted         = cerrors.New("model is not fitted")
	ErrDimensionMismatch = cerrors.New("dimension mismatch")
	ErrEmptyData         = cerrors.New("empty data")
	ErrSingularMatrix    = cerrors.New("singular matrix")
	ErrInvalidInput      = cerrors.New("invalid input")
	ErrInvalidSplit      = cerrors.New("invalid split")
	ErrNotImplemented    = cerrors.New("not implemented")
)

// Re-exported helpers so callers only need one errors import.
var (
	New    = cerrors.New
	Newf   = cerrors.Newf
	Wrap   = cerrors.Wrap
	Wrapf  = cerrors.Wrapf
	Is     = cerrors.Is
	As     = cerrors.As
	Unwrap = cerrors.Unwrap
)

// ModelError is a failure inside an estimator operation.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

// NewModelError creates a ModelError wrapping err.
func NewModelError(op, kind string, err error) *ModelError {
	return &ModelError{Op: op, Kind: kind, Err: err}
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s: %s", prefix, e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s: %v", prefix, e.Op, e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// DimensionError reports a shape mismatch along Axis (0 = rows, 1 = columns).
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

// NewDimensionError creates a DimensionError.
func NewDimensionError(op string, expected, got, axis int) *DimensionError {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

func (e *DimensionError) Error() string {
	axis := "rows"
	if e.Axis == 1 {
		axis = "columns"
	}
	return fmt.Sprintf("%s: %s: dimension mismatch on %s: expected %d, got %d",
		prefix, e.Op, axis, e.Expected, e.Got)
}

func (e *DimensionError) Is(target error) bool { return target == ErrDimensionMismatch }

// NotFittedError is returned when a method needs a fitted model.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError.
func NewNotFittedError(modelName, method string) *NotFittedError {
	return &NotFittedError{ModelName: modelName, Method: method}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s: %s: this %s instance is not fitted yet, call Fit before %s",
		prefix, e.ModelName, e.ModelName, e.Method)
}

func (e *NotFittedError) Is(target error) bool { return target == ErrNotFitted }

// ValueError reports an invalid argument value.
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError.
func NewValueError(op, message string) *ValueError {
	return &ValueError{Op: op, Message: message}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s: %s", prefix, e.Op, e.Message)
}

func (e *ValueError) Is(target error) bool { return target == ErrInvalidInput }

// SplitError reports train/test sizes that cannot partition NSamples rows.
// TestSize and TrainSize hold the requested values as written by the caller
// ("0.2", "3", or "None").
type SplitError struct {
	Op        string
	NSamples  int
	TestSize  string
	TrainSize string
	Reason    string
}

// NewSplitError creates a SplitError.
func NewSplitError(op string, nSamples int, testSize, trainSize, reason string) *SplitError {
	return &SplitError{Op: op, NSamples: nSamples, TestSize: testSize, TrainSize: trainSize, Reason: reason}
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("%s: %s: with n_samples=%d, test_size=%s and train_size=%s, %s",
		prefix, e.Op, e.NSamples, e.TestSize, e.TrainSize, e.Reason)
}

func (e *SplitError) Is(target error) bool { return target == ErrInvalidSplit }

// Recover turns a panic into an error assigned to *errp. gonum/mat panics on
// shape violations; estimator methods defer Recover so callers get an error.
//
//	func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
//		defer errors.Recover(&err, "LinearRegression.Fit")
//		...
//	}
func Recover(errp *error, op string) {
	r := recover()
	if r == nil {
		return
	}
	var err error
	switch v := r.(type) {
	case error:
		err = cerrors.WrapWithDepthf(1, v, "%s: recovered from panic", op)
	default:
		err = cerrors.NewWithDepthf(1, "%s: recovered from panic: %v", op, v)
	}
	if errp != nil {
		*errp = err
	}
}
