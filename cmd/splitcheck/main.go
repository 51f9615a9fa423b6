// Command splitcheck checks whether a Python script splits its data into
// train and test sets, and demonstrates why that matters.
//
//	splitcheck -p train.py              # checklist, appends to output.csv
//	splitcheck demo --split             # fit with a held-out test set
//	splitcheck plot -o fit.png          # chart both demo variants
//
// Flags can also be set through SPLITCHECK_* environment variables, e.g.
// SPLITCHECK_TARGET or SPLITCHECK_LOG_LEVEL.
package main

import (
	"os"

	"github.com/ezoic/splitcheck/pkg/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.LogError(err, "splitcheck failed")
		os.Exit(1)
	}
}
