package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"iter"
	"slices"
	"strconv"
)

const readBufferSize = 64 * 1024

// TSVOption configures a TSV dataset.
type TSVOption func(*TSV)

// WithAnnotationColumn treats the second column as the row annotation
// instead of a sample.
func WithAnnotationColumn() TSVOption {
	return func(t *TSV) {
		t.annotation = true
	}
}

// TSV is a tab-separated dataset. The first line is the header; the first
// column holds the row labels; all remaining cells are numbers.
type TSV struct {
	src        Source
	annotation bool
}

// NewTSV creates a dataset reading src.
func NewTSV(src Source, opts ...TSVOption) *TSV {
	t := &TSV{src: src}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// HasAnnotation reports whether the second column is the annotation.
func (t *TSV) HasAnnotation() bool {
	return t.annotation
}

// Size reports the size of the source in bytes.
func (t *TSV) Size(ctx context.Context) (int64, error) {
	return t.src.Size(ctx)
}

// Header reads the header line.
func (t *TSV) Header(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := t.src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	header, err := newReader(rc).Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}
	return slices.Clone(header), nil
}

// Rows streams the data lines. A malformed cell yields a *CellError and a
// ragged line a *RowLengthError.
func (t *TSV) Rows(ctx context.Context) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		rc, err := t.src.Open(ctx)
		if err != nil {
			yield(Row{}, err)
			return
		}
		defer rc.Close()

		r := newReader(rc)

		header, err := r.Read()
		if errors.Is(err, io.EOF) {
			yield(Row{}, ErrNoHeader)
			return
		}
		if err != nil {
			yield(Row{}, err)
			return
		}
		width := len(header)

		first := 1
		if t.annotation {
			first = 2
		}

		for {
			if err := ctx.Err(); err != nil {
				yield(Row{}, err)
				return
			}

			rec, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Row{}, err)
				return
			}

			line, _ := r.FieldPos(0)
			if len(rec) != width || len(rec) < first {
				yield(Row{}, &RowLengthError{Line: line, Want: width, Got: len(rec)})
				return
			}

			row := Row{
				Label:  rec[0],
				Values: make([]float64, len(rec)-first),
			}
			if t.annotation {
				row.Annotation = rec[1]
			}

			for i, cell := range rec[first:] {
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					yield(Row{}, &CellError{Line: line, Column: first + i, Value: cell, Err: err})
					return
				}
				row.Values[i] = v
			}

			if !yield(row, nil) {
				return
			}
		}
	}
}

func newReader(rd io.Reader) *csv.Reader {
	r := csv.NewReader(bufio.NewReaderSize(rd, readBufferSize))
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true
	return r
}
