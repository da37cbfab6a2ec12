package paircorr

import (
	"context"
	"iter"
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/paircorr/correlation"
	"github.com/hupe1980/paircorr/dataset"
	"github.com/hupe1980/paircorr/internal/pairgen"
)

// evaluator correlates the rows of the first dataset with the candidates
// of a generator.
type evaluator struct {
	n         int // samples per row
	corr      *correlation.Correlator
	gen       pairgen.Generator
	workers   int
	batchSize int

	pairs atomic.Int64 // correlated pairs, NaN included
	nan   atomic.Int64 // pairs dropped for a NaN p-value
}

// records streams the evaluated records of first. Rows are evaluated in
// batches; within a batch every row runs on its own worker and writes its
// own slot, and slots are emitted in row order so the output is
// deterministic. Placeholders and NaN results are dropped by the workers.
func (e *evaluator) records(ctx context.Context, first dataset.Dataset) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		batch := make([]dataset.Row, 0, e.batchSize)
		slots := make([][]Record, e.batchSize)

		flush := func() bool {
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(e.workers)
			for i, row := range batch {
				g.Go(func() error {
					recs, err := e.row(gctx, row, slots[i][:0])
					slots[i] = recs
					return err
				})
			}
			if err := g.Wait(); err != nil {
				yield(Record{}, err)
				return false
			}

			for i := range batch {
				for _, r := range slots[i] {
					if !yield(r, nil) {
						return false
					}
				}
				clear(slots[i])
			}
			batch = batch[:0]
			return true
		}

		for row, err := range first.Rows(ctx) {
			if err != nil {
				yield(Record{}, err)
				return
			}
			batch = append(batch, row)
			if len(batch) == e.batchSize && !flush() {
				return
			}
		}
		if len(batch) > 0 {
			flush()
		}
	}
}

func (e *evaluator) row(ctx context.Context, row dataset.Row, out []Record) ([]Record, error) {
	if err := checkRow("first", row, e.n); err != nil {
		return out, err
	}
	px := e.corr.Prepare(row.Values)

	var pairs, nan int64
	defer func() {
		e.pairs.Add(pairs)
		e.nan.Add(nan)
	}()

	for c, err := range e.gen.Pairs(ctx, row.Label) {
		if err != nil {
			return out, err
		}
		if !c.Evaluate {
			continue
		}
		if err := checkRow("second", c.Row, e.n); err != nil {
			return out, err
		}

		stat, p := e.corr.CorrelatePrepared(px, c.Prepared)
		pairs++
		if math.IsNaN(p) {
			nan++
			continue
		}

		out = append(out, Record{
			Primary:    row.Label,
			Secondary:  c.Row.Label,
			Annotation: c.Row.Annotation,
			Statistic:  stat,
			PValue:     p,
			Evaluated:  true,
		})
	}

	return out, ctx.Err()
}
