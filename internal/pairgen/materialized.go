package pairgen

import (
	"context"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/paircorr/dataset"
)

// Materialized pairs against a fully buffered second dataset whose rows
// are prepared once.
type Materialized struct {
	mode     Mode
	rows     *dataset.Memory
	prepared [][]float64
	index    map[string]*roaring.Bitmap // label -> row ordinals, MatchingOnly only
}

// NewMaterialized prepares every row of rows.
func NewMaterialized(ctx context.Context, rows *dataset.Memory, mode Mode, fn PrepareFunc) (*Materialized, error) {
	m := &Materialized{
		mode:     mode,
		rows:     rows,
		prepared: make([][]float64, rows.Len()),
	}
	if mode == MatchingOnly {
		m.index = make(map[string]*roaring.Bitmap)
	}

	for i := range rows.Len() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r := rows.At(i)
		m.prepared[i] = prepare(fn, r.Values)

		if m.index != nil {
			bm, ok := m.index[r.Label]
			if !ok {
				bm = roaring.New()
				m.index[r.Label] = bm
			}
			bm.Add(uint32(i))
		}
	}

	return m, nil
}

// Len returns the number of buffered rows.
func (m *Materialized) Len() int {
	return len(m.prepared)
}

// Pairs yields every row in AllVsAll mode. In MatchingOnly mode it visits
// only the rows labelled label, in dataset order, and skips placeholders.
func (m *Materialized) Pairs(ctx context.Context, label string) iter.Seq2[Candidate, error] {
	return func(yield func(Candidate, error) bool) {
		if m.mode == AllVsAll {
			for i := range m.prepared {
				if !yield(m.candidate(i), nil) {
					return
				}
			}
			return
		}

		bm, ok := m.index[label]
		if !ok {
			return
		}
		it := bm.Iterator()
		for it.HasNext() {
			if !yield(m.candidate(int(it.Next())), nil) {
				return
			}
		}
	}
}

func (m *Materialized) candidate(i int) Candidate {
	return Candidate{Row: m.rows.At(i), Prepared: m.prepared[i], Evaluate: true}
}
