// Package model_selection splits datasets for honest model evaluation.
//
// TrainTestSplit follows scikit-learn's train_test_split: sizes may be given
// as fractions or absolute counts, the missing side is the complement, and a
// fixed random state reproduces the exact rows scikit-learn would select.
//
//	split, err := model_selection.TrainTestSplit(X, y,
//		model_selection.WithTestSize(0.2),
//		model_selection.WithRandomState(42),
//	)
//	if err != nil {
//		return err
//	}
//	err = lr.Fit(split.XTrain, split.YTrain)
//	predictions, err := lr.Predict(split.XTest)
package model_selection

import (
	"math"
	"strconv"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/splitcheck/core/random"
	"github.com/ezoic/splitcheck/pkg/errors"
	"github.com/ezoic/splitcheck/pkg/log"
)

// DefaultTestSize is the held-out fraction used when no size is given.
const DefaultTestSize = 0.25

type sizeKind int

const (
	sizeUnset sizeKind = iota
	sizeFraction
	sizeCount
)

// size is either a fraction of the samples or an absolute row count.
type size struct {
	kind  sizeKind
	frac  float64
	count int
}

func (s size) String() string {
	switch s.kind {
	case sizeFraction:
		return strconv.FormatFloat(s.frac, 'g', -1, 64)
	case sizeCount:
		return strconv.Itoa(s.count)
	default:
		return "None"
	}
}

type splitConfig struct {
	testSize    size
	trainSize   size
	shuffle     bool
	randomState *uint32
}

// SplitOption configures a split.
type SplitOption func(*splitConfig)

// WithTestSize sets the held-out fraction, in (0, 1).
func WithTestSize(frac float64) SplitOption {
	return func(c *splitConfig) { c.testSize = size{kind: sizeFraction, frac: frac} }
}

// WithTestCount sets the number of held-out rows.
func WithTestCount(n int) SplitOption {
	return func(c *splitConfig) { c.testSize = size{kind: sizeCount, count: n} }
}

// WithTrainSize sets the training fraction, in (0, 1).
func WithTrainSize(frac float64) SplitOption {
	return func(c *splitConfig) { c.trainSize = size{kind: sizeFraction, frac: frac} }
}

// WithTrainCount sets the number of training rows.
func WithTrainCount(n int) SplitOption {
	return func(c *splitConfig) { c.trainSize = size{kind: sizeCount, count: n} }
}

// WithRandomState fixes the shuffle seed. Without it the seed comes from the
// wall clock and the split is not reproducible.
func WithRandomState(seed uint32) SplitOption {
	return func(c *splitConfig) { c.randomState = &seed }
}

// WithShuffle controls shuffling. With shuffle disabled the first rows form
// the training set and the following rows the test set.
func WithShuffle(shuffle bool) SplitOption {
	return func(c *splitConfig) { c.shuffle = shuffle }
}

func newSplitConfig(opts []SplitOption) *splitConfig {
	cfg := &splitConfig{shuffle: true}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Split holds both halves of a partitioned dataset. Row i of XTrain is row
// TrainIndices[i] of the input; likewise for the test half.
type Split struct {
	XTrain       *mat.Dense
	XTest        *mat.Dense
	YTrain       *mat.VecDense
	YTest        *mat.VecDense
	TrainIndices []int
	TestIndices  []int
}

// TrainTestSplit partitions the rows of X and y into training and test sets.
//
// Errors:
//   - DimensionError: X and y have different numbers of rows
//   - ValueError: empty input, or a size outside its valid range
//   - SplitError: sizes that leave the training set empty or exceed the rows
func TrainTestSplit(X mat.Matrix, y mat.Vector, opts ...SplitOption) (_ *Split, err error) {
	defer errors.Recover(&err, "TrainTestSplit")

	r, _ := X.Dims()
	if y.Len() != r {
		return nil, errors.NewDimensionError("TrainTestSplit", r, y.Len(), 0)
	}

	train, test, err := SplitIndices(r, opts...)
	if err != nil {
		return nil, err
	}

	return &Split{
		XTrain:       TakeRows(X, train),
		XTest:        TakeRows(X, test),
		YTrain:       TakeElems(y, train),
		YTest:        TakeElems(y, test),
		TrainIndices: train,
		TestIndices:  test,
	}, nil
}

// SplitIndices returns the training and test row indices for nSamples rows.
func SplitIndices(nSamples int, opts ...SplitOption) (train, test []int, err error) {
	cfg := newSplitConfig(opts)

	nTrain, nTest, err := validateShuffleSplit(nSamples, cfg.testSize, cfg.trainSize)
	if err != nil {
		return nil, nil, err
	}

	logger := log.GetLoggerWithName("model_selection")

	if !cfg.shuffle {
		train = arange(0, nTrain)
		test = arange(nTrain, nTrain+nTest)
		logger.Debug("Split without shuffling",
			log.OperationKey, log.OperationSplit,
			log.PhaseKey, log.PhaseDataPrep,
			log.SamplesKey, nSamples,
			"n_train", nTrain,
			"n_test", nTest,
		)
		return train, test, nil
	}

	var seed uint32
	if cfg.randomState != nil {
		seed = *cfg.randomState
	} else {
		seed = uint32(time.Now().UnixNano())
	}

	perm := random.NewRandomState(seed).Permutation(nSamples)
	test = perm[:nTest]
	train = perm[nTest : nTest+nTrain]

	logger.Debug("Split with shuffling",
		log.OperationKey, log.OperationSplit,
		log.PhaseKey, log.PhaseDataPrep,
		log.SamplesKey, nSamples,
		log.RandomStateKey, seed,
		log.TestSizeKey, cfg.testSize.String(),
		"n_train", nTrain,
		"n_test", nTest,
	)

	return train, test, nil
}

// validateShuffleSplit resolves the requested sizes into row counts.
func validateShuffleSplit(n int, testSize, trainSize size) (nTrain, nTest int, err error) {
	const op = "TrainTestSplit"

	if n <= 0 {
		return 0, 0, errors.NewModelError(op, "no samples to split", errors.ErrEmptyData)
	}

	if testSize.kind == sizeUnset && trainSize.kind == sizeUnset {
		testSize = size{kind: sizeFraction, frac: DefaultTestSize}
	}

	if err := checkSize("test_size", testSize, n); err != nil {
		return 0, 0, err
	}
	if err := checkSize("train_size", trainSize, n); err != nil {
		return 0, 0, err
	}

	if testSize.kind == sizeFraction && trainSize.kind == sizeFraction {
		if sum := testSize.frac + trainSize.frac; sum > 1 {
			return 0, 0, errors.NewValueError(op,
				"the sum of test_size and train_size = "+strconv.FormatFloat(sum, 'g', -1, 64)+
					", should be in the (0, 1) range; reduce test_size and/or train_size")
		}
	}

	switch testSize.kind {
	case sizeFraction:
		nTest = int(math.Ceil(testSize.frac * float64(n)))
	case sizeCount:
		nTest = testSize.count
	}
	switch trainSize.kind {
	case sizeFraction:
		nTrain = int(math.Floor(trainSize.frac * float64(n)))
	case sizeCount:
		nTrain = trainSize.count
	}

	if testSize.kind == sizeUnset {
		nTest = n - nTrain
	}
	if trainSize.kind == sizeUnset {
		nTrain = n - nTest
	}

	if nTrain+nTest > n {
		return 0, 0, errors.NewSplitError(op, n, testSize.String(), trainSize.String(),
			"the sum of train and test sizes = "+strconv.Itoa(nTrain+nTest)+
				" is larger than the number of samples")
	}
	if nTrain == 0 {
		return 0, 0, errors.NewSplitError(op, n, testSize.String(), trainSize.String(),
			"the resulting train set will be empty")
	}

	return nTrain, nTest, nil
}

func checkSize(name string, s size, n int) error {
	switch s.kind {
	case sizeFraction:
		if s.frac <= 0 || s.frac >= 1 || math.IsNaN(s.frac) {
			return errors.NewValueError("TrainTestSplit",
				name+"="+s.String()+" should be a float in the (0, 1) range")
		}
	case sizeCount:
		if s.count <= 0 || s.count >= n {
			return errors.NewValueError("TrainTestSplit",
				name+"="+s.String()+" should be positive and smaller than the number of samples "+strconv.Itoa(n))
		}
	}
	return nil
}

func arange(start, stop int) []int {
	out := make([]int, 0, stop-start)
	for i := start; i < stop; i++ {
		out = append(out, i)
	}
	return out
}

// TakeRows returns a new matrix made of the given rows of X, in order.
// It returns nil when idx is empty, since gonum has no zero-row Dense.
func TakeRows(X mat.Matrix, idx []int) *mat.Dense {
	if len(idx) == 0 {
		return nil
	}
	_, c := X.Dims()
	out := mat.NewDense(len(idx), c, nil)
	for i, row := range idx {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(row, j))
		}
	}
	return out
}

// TakeElems returns a new vector made of the given elements of y, in order.
// It returns nil when idx is empty.
func TakeElems(y mat.Vector, idx []int) *mat.VecDense {
	if len(idx) == 0 {
		return nil
	}
	out := mat.NewVecDense(len(idx), nil)
	for i, k := range idx {
		out.SetVec(i, y.AtVec(k))
	}
	return out
}
