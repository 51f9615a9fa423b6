package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scErrors "github.com/ezoic/splitcheck/pkg/errors"
)

// TestErrorWrappingCompatibility tests standard wrapping with our custom types
func TestErrorWrappingCompatibility(t *testing.T) {
	originalErr := scErrors.NewNotFittedError("TestModel", "Predict")
	wrappedErr := fmt.Errorf("demo step failed: %w", originalErr)

	if !errors.Is(wrappedErr, originalErr) {
		t.Errorf("errors.Is failed to identify wrapped error")
	}

	var notFittedErr *scErrors.NotFittedError
	if !errors.As(wrappedErr, &notFittedErr) {
		t.Fatalf("errors.As failed to extract NotFittedError")
	}
	if notFittedErr.ModelName != "TestModel" {
		t.Errorf("expected ModelName 'TestModel', got '%s'", notFittedErr.ModelName)
	}
}

// TestCombinedErrorTypes tests mixing custom and standard errors
func TestCombinedErrorTypes(t *testing.T) {
	stdErr := fmt.Errorf("standard error")
	customErr := scErrors.NewModelError("TestOp", "test failure", stdErr)
	wrappedErr := scErrors.Wrap(customErr, "operation context")

	if !errors.Is(wrappedErr, stdErr) {
		t.Errorf("failed to find standard error in chain")
	}

	var modelErr *scErrors.ModelError
	if !errors.As(wrappedErr, &modelErr) {
		t.Fatalf("failed to extract ModelError")
	}
	if modelErr.Unwrap() != stdErr {
		t.Errorf("ModelError.Unwrap() didn't return expected error")
	}
}

// TestSentinelErrors checks every typed error against its sentinel
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"model error", scErrors.NewModelError("Op", "empty data", scErrors.ErrEmptyData), scErrors.ErrEmptyData},
		{"dimension error", scErrors.NewDimensionError("Op", 2, 1, 1), scErrors.ErrDimensionMismatch},
		{"not fitted error", scErrors.NewNotFittedError("M", "Predict"), scErrors.ErrNotFitted},
		{"value error", scErrors.NewValueError("Op", "bad"), scErrors.ErrInvalidInput},
		{"split error", scErrors.NewSplitError("Op", 1, "0.5", "None", "empty"), scErrors.ErrInvalidSplit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.True(t, scErrors.Is(scErrors.Wrapf(tt.err, "step %d", 1), tt.sentinel))
			assert.False(t, errors.Is(tt.err, scErrors.ErrNotImplemented))
		})
	}
}

func TestDimensionError_Message(t *testing.T) {
	assert.Equal(t,
		"splitcheck: LinearRegression.Predict: dimension mismatch on columns: expected 2, got 3",
		scErrors.NewDimensionError("LinearRegression.Predict", 2, 3, 1).Error())
	assert.Equal(t,
		"splitcheck: TrainTestSplit: dimension mismatch on rows: expected 3, got 2",
		scErrors.NewDimensionError("TrainTestSplit", 3, 2, 0).Error())
}

func TestRecover(t *testing.T) {
	t.Run("panic value", func(t *testing.T) {
		run := func() (err error) {
			defer scErrors.Recover(&err, "Op")
			panic("mat: dimension mismatch")
		}
		err := run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Op: recovered from panic: mat: dimension mismatch")
	})

	t.Run("panic error", func(t *testing.T) {
		cause := errors.New("boom")
		run := func() (err error) {
			defer scErrors.Recover(&err, "Op")
			panic(cause)
		}
		err := run()
		require.Error(t, err)
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("no panic", func(t *testing.T) {
		run := func() (err error) {
			defer scErrors.Recover(&err, "Op")
			return nil
		}
		assert.NoError(t, run())
	})
}
