package paircorr

import (
	"context"
	"fmt"

	"github.com/hupe1980/paircorr/dataset"
)

// checkSamples compares the sample columns of both headers. The label
// column of both and, when present, the annotation column of the second
// are not samples. It returns the number of samples.
func checkSamples(ctx context.Context, first, second dataset.Dataset, secondHasAnnotation bool) (int, error) {
	h1, err := first.Header(ctx)
	if err != nil {
		return 0, fmt.Errorf("paircorr: first dataset header: %w", err)
	}
	h2, err := second.Header(ctx)
	if err != nil {
		return 0, fmt.Errorf("paircorr: second dataset header: %w", err)
	}

	s1 := samples(h1, 1)
	s2 := samples(h2, 1)
	if secondHasAnnotation {
		s2 = samples(h2, 2)
	}

	if len(s1) != len(s2) {
		return 0, &SampleCountError{First: len(s1), Second: len(s2), AnnotationDropped: secondHasAnnotation}
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			return 0, &SampleMismatchError{Index: i, First: s1[i], Second: s2[i]}
		}
	}
	return len(s1), nil
}

func samples(header []string, skip int) []string {
	if len(header) < skip {
		return nil
	}
	return header[skip:]
}

// firstRow returns the first row of ds.
func firstRow(ctx context.Context, ds dataset.Dataset) (dataset.Row, error) {
	for r, err := range ds.Rows(ctx) {
		return r, err
	}
	return dataset.Row{}, ErrEmptyDataset
}

// checkRow rejects a row whose length differs from the header's sample
// count n. Correlating it would only ever yield NaN.
func checkRow(which string, row dataset.Row, n int) error {
	if len(row.Values) != n {
		return &RowLengthError{Dataset: which, Label: row.Label, Want: n, Got: len(row.Values)}
	}
	return nil
}

// withinAutoMaterializeLimit reports whether a second dataset of size
// bytes is small enough to buffer automatically. Sizes are compared in
// whole MiB, so anything below 101 MiB qualifies.
func withinAutoMaterializeLimit(size int64) bool {
	return size >= 0 && size>>20 <= autoMaterializeLimitMiB
}
