package dataset

import "fmt"

// CellError reports a cell that is not a number.
type CellError struct {
	Line   int // 1-based line in the source
	Column int // 0-based field index, label column included
	Value  string
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("dataset: line %d column %d has an invalid value %q", e.Line, e.Column, e.Value)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// RowLengthError reports a row whose field count differs from the header's.
type RowLengthError struct {
	Line int
	Want int
	Got  int
}

func (e *RowLengthError) Error() string {
	return fmt.Sprintf("dataset: line %d has %d fields, header has %d", e.Line, e.Got, e.Want)
}
