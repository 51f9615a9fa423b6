package demo_test

import (
	"fmt"

	"github.com/ezoic/splitcheck/internal/demo"
)

func ExampleRunWithoutSplit() {
	res, err := demo.RunWithoutSplit()
	if err != nil {
		return
	}
	fmt.Println(demo.FormatPredictions(res.Predictions))

	// Output: [2. 3. 4.]
}

func ExampleRunWithSplit() {
	res, err := demo.RunWithSplit()
	if err != nil {
		return
	}
	fmt.Printf("train rows: %v, test rows: %v\n", res.TrainIndices, res.TestIndices)
	fmt.Println(demo.FormatPredictions(res.Predictions))

	// Output: train rows: [1 2], test rows: [0]
	// [2.]
}
