package pairgen

import (
	"context"
	"iter"

	"github.com/hupe1980/paircorr/dataset"
)

// PrepareFunc transforms a row's values once before any pair uses them.
// A nil PrepareFunc is the identity.
type PrepareFunc func(values []float64) []float64

// Candidate is a row of the second dataset paired with a row of the first.
type Candidate struct {
	Row dataset.Row
	// Prepared holds the prepared values. It is nil when Evaluate is false.
	Prepared []float64
	// Evaluate is false for placeholders of matching-only mode whose labels
	// differ. Placeholders are never correlated.
	Evaluate bool
}

// Generator yields the candidates of the second dataset for one row of
// the first. Implementations are safe for concurrent use.
type Generator interface {
	Pairs(ctx context.Context, label string) iter.Seq2[Candidate, error]
}

// Mode selects which pairs are evaluated.
type Mode int

const (
	// AllVsAll evaluates every pair.
	AllVsAll Mode = iota
	// MatchingOnly evaluates pairs whose primary labels are equal.
	MatchingOnly
)

func (m Mode) String() string {
	if m == MatchingOnly {
		return "matching-only"
	}
	return "all-vs-all"
}

func prepare(fn PrepareFunc, values []float64) []float64 {
	if fn == nil {
		return values
	}
	return fn(values)
}
