package dataset

import (
	"context"
	"errors"
	"iter"
	"slices"
)

// ErrNoHeader is returned when a dataset has no header line.
var ErrNoHeader = errors.New("dataset: missing header")

// Row is one labelled vector of a dataset.
type Row struct {
	// Label is the primary label (e.g. a gene).
	Label string
	// Annotation is the secondary label of the row. Empty means absent.
	Annotation string
	// Values are the samples, in header order.
	Values []float64
}

// Dataset is an ordered, re-streamable sequence of rows.
//
// Rows may be called any number of times; every call yields the same rows
// in the same order. Yielded rows must not be mutated.
type Dataset interface {
	// Header returns the column names, label column (and annotation column,
	// if any) included.
	Header(ctx context.Context) ([]string, error)
	// Rows streams the rows. Iteration stops after the first error.
	Rows(ctx context.Context) iter.Seq2[Row, error]
}

// Sized is implemented by datasets that know the size of their backing
// data in bytes.
type Sized interface {
	Size(ctx context.Context) (int64, error)
}

// Memory is a fully buffered dataset.
type Memory struct {
	header []string
	rows   []Row
	size   int64
}

// NewMemory creates a dataset over rows. The rows are not copied.
func NewMemory(header []string, rows []Row) *Memory {
	var size int64
	for _, r := range rows {
		size += int64(len(r.Label)+len(r.Annotation)) + 8*int64(len(r.Values))
	}
	return &Memory{header: header, rows: rows, size: size}
}

// Header returns a copy of the header.
func (m *Memory) Header(context.Context) ([]string, error) {
	return slices.Clone(m.header), nil
}

// Rows yields the buffered rows.
func (m *Memory) Rows(ctx context.Context) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		for _, r := range m.rows {
			if err := ctx.Err(); err != nil {
				yield(Row{}, err)
				return
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

// Len returns the number of rows.
func (m *Memory) Len() int {
	return len(m.rows)
}

// At returns the i-th row.
func (m *Memory) At(i int) Row {
	return m.rows[i]
}

// Size returns the approximate in-memory footprint of the rows in bytes.
func (m *Memory) Size(context.Context) (int64, error) {
	return m.size, nil
}

// Collect buffers all rows of ds.
func Collect(ctx context.Context, ds Dataset) (*Memory, error) {
	if m, ok := ds.(*Memory); ok {
		return m, nil
	}

	header, err := ds.Header(ctx)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for r, err := range ds.Rows(ctx) {
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return NewMemory(header, rows), nil
}
