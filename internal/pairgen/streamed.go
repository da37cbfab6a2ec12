package pairgen

import (
	"context"
	"iter"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hupe1980/paircorr/dataset"
)

// DefaultCacheSize is the number of prepared rows Streamed keeps.
const DefaultCacheSize = 4096

// Streamed re-reads the second dataset for every row of the first.
// Prepared vectors are cached by row ordinal so repeated passes skip the
// transform for recently seen rows.
type Streamed struct {
	mode  Mode
	ds    dataset.Dataset
	fn    PrepareFunc
	cache *lru.Cache[int, []float64]
}

// NewStreamed creates a generator over ds. cacheSize <= 0 disables the
// prepared-vector cache; it is also unused when fn is nil.
func NewStreamed(ds dataset.Dataset, mode Mode, fn PrepareFunc, cacheSize int) (*Streamed, error) {
	s := &Streamed{mode: mode, ds: ds, fn: fn}

	if fn != nil && cacheSize > 0 {
		c, err := lru.New[int, []float64](cacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = c
	}

	return s, nil
}

// Pairs streams the second dataset. In MatchingOnly mode rows with another
// label are yielded as placeholders.
func (s *Streamed) Pairs(ctx context.Context, label string) iter.Seq2[Candidate, error] {
	return func(yield func(Candidate, error) bool) {
		i := -1
		for r, err := range s.ds.Rows(ctx) {
			if err != nil {
				yield(Candidate{}, err)
				return
			}
			i++

			if s.mode == MatchingOnly && r.Label != label {
				if !yield(Candidate{Row: r}, nil) {
					return
				}
				continue
			}

			if !yield(Candidate{Row: r, Prepared: s.prepared(i, r.Values), Evaluate: true}, nil) {
				return
			}
		}
	}
}

func (s *Streamed) prepared(i int, values []float64) []float64 {
	if s.cache == nil {
		return prepare(s.fn, values)
	}
	if p, ok := s.cache.Get(i); ok {
		return p
	}
	p := s.fn(values)
	s.cache.Add(i, p)
	return p
}

// CacheLen returns the number of cached prepared rows.
func (s *Streamed) CacheLen() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}
