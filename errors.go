package paircorr

import (
	"errors"
	"fmt"

	"github.com/hupe1980/paircorr/internal/resource"
)

var (
	// ErrInvalidConfig is returned for configurations rejected before any
	// computation starts.
	ErrInvalidConfig = errors.New("paircorr: invalid configuration")

	// ErrEmptyDataset is returned when the first dataset has no rows.
	ErrEmptyDataset = errors.New("paircorr: first dataset has no rows")

	// ErrMemoryLimitExceeded is returned when a forced materialization of
	// the second dataset does not fit the memory limit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// SampleCountError reports datasets with a different number of samples.
type SampleCountError struct {
	First  int
	Second int
	// AnnotationDropped is set when the second dataset's annotation column
	// was removed before counting.
	AnnotationDropped bool
}

func (e *SampleCountError) Error() string {
	msg := fmt.Sprintf("paircorr: sample count differs: first dataset has %d, second has %d", e.First, e.Second)
	if e.AnnotationDropped {
		msg += " (annotation column excluded)"
	}
	return msg
}

// SampleMismatchError reports datasets with the same number of samples
// whose sample names differ.
type SampleMismatchError struct {
	// Index is the 0-based position of the first differing sample.
	Index  int
	First  string
	Second string
}

func (e *SampleMismatchError) Error() string {
	return fmt.Sprintf("paircorr: samples differ at position %d (%q vs %q), are they in a different order?", e.Index, e.First, e.Second)
}

// RowLengthError reports a row whose number of values differs from the
// number of samples in the headers.
type RowLengthError struct {
	// Dataset is "first" or "second".
	Dataset string
	Label   string
	Want    int
	Got     int
}

func (e *RowLengthError) Error() string {
	return fmt.Sprintf("paircorr: %s dataset row %q has %d values, headers have %d samples", e.Dataset, e.Label, e.Got, e.Want)
}

// SpillError wraps a failure of the external sort.
type SpillError struct {
	// Stage is the pipeline stage that sorted: "rank", "spool" or "truncate".
	Stage string
	Err   error
}

func (e *SpillError) Error() string {
	return fmt.Sprintf("paircorr: %s sort: %v", e.Stage, e.Err)
}

func (e *SpillError) Unwrap() error { return e.Err }
