// Package checklist answers one item of a machine learning checklist: does
// a script split its data into train and test sets?
//
// A script passes when any of its lines contains the target pattern
// (train_test_split by default). Every check is appended as a row to a CSV
// log so results accumulate across runs:
//
//	file_name,target,detected,datetime
//	yes_train_test_split.py,train_test_split,true,2024-05-01T09:30:00Z
package checklist

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	scErrors "github.com/ezoic/splitcheck/pkg/errors"
	"github.com/ezoic/splitcheck/pkg/log"
)

// Defaults used by the command line.
const (
	DefaultTarget = "train_test_split"
	DefaultOutput = "output.csv"
)

// Header is the first row of every checklist CSV file.
var Header = []string{"file_name", "target", "detected", "datetime"}

// Detect reports whether any line read from r contains target. Lines are
// compared without their trailing newline, so target never matches across
// line boundaries.
func Detect(r io.Reader, target string) (bool, error) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if strings.Contains(line, target) {
				return true, nil
			}
		}
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}

// DetectFile runs Detect on the file at path.
func DetectFile(path, target string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, scErrors.Wrapf(err, "could not read file %q", path)
	}
	defer func() { _ = f.Close() }()

	found, err := Detect(f, target)
	if err != nil {
		return false, scErrors.Wrapf(err, "could not read file %q", path)
	}
	return found, nil
}

// Record is one row of the checklist CSV.
type Record struct {
	FileName string
	Target   string
	Detected bool
	Time     time.Time
}

// Row returns the record as CSV fields. Time is written as RFC 3339 in UTC.
func (r Record) Row() []string {
	return []string{
		r.FileName,
		r.Target,
		strconv.FormatBool(r.Detected),
		r.Time.UTC().Format(time.RFC3339Nano),
	}
}

// AppendRecord appends rec to the CSV file at path. A missing file is
// created with Header as its first row; an existing file is never rewritten.
func AppendRecord(path string, rec Record) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createWithHeader(path); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return scErrors.Wrapf(err, "could not open file %q", path)
	}
	defer func() { _ = f.Close() }()

	if err := writeRow(f, rec.Row()); err != nil {
		return scErrors.Wrap(err, "failed to write data to CSV file")
	}
	return nil
}

func createWithHeader(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			// Created concurrently; its creator wrote the header.
			return nil
		}
		return scErrors.Wrapf(err, "could not create file %q", path)
	}
	defer func() { _ = f.Close() }()

	if err := writeRow(f, Header); err != nil {
		return scErrors.Wrap(err, "failed to write header to CSV file")
	}
	return nil
}

func writeRow(w io.Writer, row []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// ReadRecords parses a checklist CSV previously written by AppendRecord.
func ReadRecords(r io.Reader) ([]Record, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, scErrors.Wrap(err, "failed to parse CSV")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if strings.Join(rows[0], ",") != strings.Join(Header, ",") {
		return nil, scErrors.NewValueError("ReadRecords",
			fmt.Sprintf("unexpected header %q", strings.Join(rows[0], ",")))
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(Header) {
			return nil, scErrors.NewValueError("ReadRecords",
				fmt.Sprintf("row %d: expected %d fields, got %d", i+2, len(Header), len(row)))
		}
		detected, err := strconv.ParseBool(row[2])
		if err != nil {
			return nil, scErrors.Wrapf(err, "row %d: detected", i+2)
		}
		ts, err := time.Parse(time.RFC3339Nano, row[3])
		if err != nil {
			return nil, scErrors.Wrapf(err, "row %d: datetime", i+2)
		}
		records = append(records, Record{FileName: row[0], Target: row[1], Detected: detected, Time: ts})
	}
	return records, nil
}

// Checker scans scripts for Target and appends each result to Output.
type Checker struct {
	Target string
	Output string
	// Now stamps records; time.Now when nil.
	Now func() time.Time
}

// NewChecker returns a Checker with the default target and output file.
func NewChecker() *Checker {
	return &Checker{Target: DefaultTarget, Output: DefaultOutput}
}

// Check scans the script at path and appends the outcome to c.Output.
func (c *Checker) Check(path string) (Record, error) {
	logger := log.GetLoggerWithName("checklist").With(log.OperationKey, log.OperationScan)

	detected, err := DetectFile(path, c.Target)
	if err != nil {
		return Record{}, err
	}
	logger.Debug("Scanned file", log.PathKey, path, "target", c.Target, "detected", detected)

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	rec := Record{
		FileName: filepath.Base(path),
		Target:   c.Target,
		Detected: detected,
		Time:     now().UTC(),
	}

	if err := AppendRecord(c.Output, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}
