package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	scErrors "github.com/ezoic/splitcheck/pkg/errors"
)

func TestRegressionMetrics_InputValidation(t *testing.T) {
	funcs := map[string]func(yTrue, yPred *mat.VecDense) (float64, error){
		"MSE":                    MSE,
		"RMSE":                   RMSE,
		"MAE":                    MAE,
		"R2Score":                R2Score,
		"ExplainedVarianceScore": ExplainedVarianceScore,
	}

	for name, fn := range funcs {
		t.Run(name+"/empty", func(t *testing.T) {
			_, err := fn(&mat.VecDense{}, &mat.VecDense{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, scErrors.ErrInvalidInput))
		})
		t.Run(name+"/length mismatch", func(t *testing.T) {
			_, err := fn(mat.NewVecDense(3, []float64{1, 2, 3}), mat.NewVecDense(2, []float64{1, 2}))
			require.Error(t, err)
			assert.True(t, errors.Is(err, scErrors.ErrDimensionMismatch))
		})
	}
}

func TestR2Score_DegenerateCases(t *testing.T) {
	tests := []struct {
		name  string
		yTrue []float64
		yPred []float64
		want  float64
	}{
		{name: "constant target predicted exactly", yTrue: []float64{3, 3, 3}, yPred: []float64{3, 3, 3}, want: 1},
		{name: "constant target missed", yTrue: []float64{3, 3, 3}, yPred: []float64{3, 4, 3}, want: 0},
		{name: "mean predictor", yTrue: []float64{1, 2, 3}, yPred: []float64{2, 2, 2}, want: 0},
		{name: "worse than mean", yTrue: []float64{1, 2, 3}, yPred: []float64{3, 2, 1}, want: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(
				mat.NewVecDense(len(tt.yTrue), tt.yTrue),
				mat.NewVecDense(len(tt.yPred), tt.yPred),
			)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestR2Score_SingleSampleIsNaN(t *testing.T) {
	got, err := R2Score(mat.NewVecDense(1, []float64{2}), mat.NewVecDense(1, []float64{5}))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestMSEMatrix_RejectsWideMatrix(t *testing.T) {
	_, err := MSEMatrix(mat.NewDense(2, 2, nil), mat.NewDense(2, 2, nil))
	require.Error(t, err)

	var valErr *scErrors.ValueError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "MSEMatrix", valErr.Op)
}

func TestColumnVector(t *testing.T) {
	v, err := ColumnVector("test", mat.NewDense(3, 1, []float64{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, mat.Col(nil, 0, v))
}
