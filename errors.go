package loadreport

import (
	"errors"
	"fmt"
)

// Sentinel errors for report construction failure conditions. Everything
// below is the fatal class: a document built on invalid core statistics is
// worse than no document, so these abort the whole export. Missing optional
// content never produces an error; the affected block is omitted instead.
var (
	ErrNilInput       = errors.New("loadreport: report input is nil")
	ErrNoStats        = errors.New("loadreport: statistics are missing")
	ErrMalformedStats = errors.New("loadreport: statistics are malformed")
	ErrNotEnoughRuns  = errors.New("loadreport: trend analysis needs at least two runs")
)

// ReportError represents an error that occurred while generating a specific
// report. It wraps an underlying error and includes the operation name for
// context.
type ReportError struct {
	Op  string // operation name, e.g. "Performance", "Trend"
	Err error  // underlying error
}

func (e *ReportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("loadreport.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("loadreport.%s: unknown error", e.Op)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// newReportError creates a new ReportError wrapping the given error with
// operation context.
func newReportError(op string, err error) *ReportError {
	return &ReportError{Op: op, Err: err}
}
