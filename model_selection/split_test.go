package model_selection

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	scErrors "github.com/ezoic/splitcheck/pkg/errors"
)

func TestTrainTestSplit_ThreeRowsSeed42(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
	})
	y := mat.NewVecDense(3, []float64{2, 3, 4})

	split, err := TrainTestSplit(X, y, WithTestSize(0.2), WithRandomState(42))
	require.NoError(t, err)

	assert.Equal(t, []int{0}, split.TestIndices)
	assert.Equal(t, []int{1, 2}, split.TrainIndices)

	assert.True(t, mat.Equal(split.XTest, mat.NewDense(1, 2, []float64{1, 1})))
	assert.True(t, mat.Equal(split.XTrain, mat.NewDense(2, 2, []float64{2, 2, 3, 3})))
	assert.Equal(t, []float64{2}, split.YTest.RawVector().Data)
	assert.Equal(t, []float64{3, 4}, split.YTrain.RawVector().Data)
}

func TestSplitIndices_Sizes(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		opts      []SplitOption
		wantTrain int
		wantTest  int
	}{
		{name: "default quarter", n: 8, wantTrain: 6, wantTest: 2},
		{name: "test fraction rounds up", n: 3, opts: []SplitOption{WithTestSize(0.2)}, wantTrain: 2, wantTest: 1},
		{name: "train fraction rounds down", n: 10, opts: []SplitOption{WithTrainSize(0.75)}, wantTrain: 7, wantTest: 3},
		{name: "test count", n: 10, opts: []SplitOption{WithTestCount(4)}, wantTrain: 6, wantTest: 4},
		{name: "train count", n: 10, opts: []SplitOption{WithTrainCount(3)}, wantTrain: 3, wantTest: 7},
		{name: "both fractions leave rows unused", n: 10, opts: []SplitOption{WithTestSize(0.2), WithTrainSize(0.5)}, wantTrain: 5, wantTest: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]SplitOption{WithRandomState(0)}, tt.opts...)
			train, test, err := SplitIndices(tt.n, opts...)
			require.NoError(t, err)
			assert.Len(t, train, tt.wantTrain)
			assert.Len(t, test, tt.wantTest)
			assertDisjoint(t, train, test)
		})
	}
}

func TestSplitIndices_PartitionCoversAllRows(t *testing.T) {
	train, test, err := SplitIndices(10, WithTestSize(0.3), WithRandomState(42))
	require.NoError(t, err)

	// RandomState(42).permutation(10) = [8 1 5 0 7 2 9 4 3 6]
	assert.Equal(t, []int{8, 1, 5}, test)
	assert.Equal(t, []int{0, 7, 2, 9, 4, 3, 6}, train)

	all := append(append([]int{}, train...), test...)
	sort.Ints(all)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, all)
}

func TestSplitIndices_NoShuffle(t *testing.T) {
	train, test, err := SplitIndices(5, WithTestCount(2), WithShuffle(false))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, train)
	assert.Equal(t, []int{3, 4}, test)
}

func TestSplitIndices_Reproducible(t *testing.T) {
	train1, test1, err := SplitIndices(100, WithTestSize(0.2), WithRandomState(7))
	require.NoError(t, err)
	train2, test2, err := SplitIndices(100, WithTestSize(0.2), WithRandomState(7))
	require.NoError(t, err)

	assert.Equal(t, train1, train2)
	assert.Equal(t, test1, test2)
}

func TestSplitIndices_Errors(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		opts     []SplitOption
		sentinel error
	}{
		{name: "no samples", n: 0, sentinel: scErrors.ErrEmptyData},
		{name: "test fraction zero", n: 10, opts: []SplitOption{WithTestSize(0)}, sentinel: scErrors.ErrInvalidInput},
		{name: "test fraction one", n: 10, opts: []SplitOption{WithTestSize(1)}, sentinel: scErrors.ErrInvalidInput},
		{name: "test count too large", n: 10, opts: []SplitOption{WithTestCount(10)}, sentinel: scErrors.ErrInvalidInput},
		{name: "train count zero", n: 10, opts: []SplitOption{WithTrainCount(0)}, sentinel: scErrors.ErrInvalidInput},
		{name: "fractions sum above one", n: 10, opts: []SplitOption{WithTestSize(0.6), WithTrainSize(0.6)}, sentinel: scErrors.ErrInvalidInput},
		{name: "counts exceed samples", n: 10, opts: []SplitOption{WithTestCount(6), WithTrainCount(6)}, sentinel: scErrors.ErrInvalidSplit},
		{name: "empty train set", n: 1, opts: []SplitOption{WithTestSize(0.5)}, sentinel: scErrors.ErrInvalidSplit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := SplitIndices(tt.n, tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
		})
	}
}

func TestSplitIndices_EmptyTrainMessage(t *testing.T) {
	_, _, err := SplitIndices(1, WithTestSize(0.5))
	require.Error(t, err)

	var splitErr *scErrors.SplitError
	require.True(t, errors.As(err, &splitErr))
	assert.Equal(t, 1, splitErr.NSamples)
	assert.Equal(t, "0.5", splitErr.TestSize)
	assert.Equal(t, "None", splitErr.TrainSize)
	assert.Contains(t, err.Error(), "the resulting train set will be empty")
}

func TestTrainTestSplit_DimensionMismatch(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewVecDense(2, []float64{1, 2})

	_, err := TrainTestSplit(X, y, WithRandomState(1))
	require.Error(t, err)

	var dimErr *scErrors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 3, dimErr.Expected)
	assert.Equal(t, 2, dimErr.Got)
}

func assertDisjoint(t *testing.T, a, b []int) {
	t.Helper()
	seen := make(map[int]bool, len(a))
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range b {
		assert.False(t, seen[v], "index %d in both halves", v)
	}
}
