package paircorr

import (
	"cmp"
	"context"
	"errors"
	"iter"
	"math"
	"time"

	"github.com/hupe1980/paircorr/internal/extsort"
)

// Sort stages.
const (
	stageRank     = "rank"
	stageSpool    = "spool"
	stageTruncate = "truncate"
)

func byPValueDesc(a, b Record) int {
	return cmp.Compare(b.PValue, a.PValue)
}

func byAbsStatisticDesc(a, b Record) int {
	return cmp.Compare(math.Abs(b.Statistic), math.Abs(a.Statistic))
}

// inputOrder makes the stable external sort a disk-backed spool.
func inputOrder(Record, Record) int {
	return 0
}

func (a *Analysis) newSorter(order func(a, b Record) int) (*extsort.Sorter[Record], error) {
	return extsort.New(a.cfg.SortMemoryBudget, order, recordCodec{},
		extsort.WithTempDir(a.opts.tempDir),
		extsort.WithFileSystem(a.opts.fs),
		extsort.WithCompression(a.opts.compression),
		extsort.WithWorkers(a.opts.workers),
		extsort.WithController(a.rc),
	)
}

// sortStage drains in into an external sort and returns the lazy sorted
// output with the number of records read. done releases the spill files
// of an output that was not fully consumed.
func (a *Analysis) sortStage(ctx context.Context, log *Logger, stage string, order func(a, b Record) int, in iter.Seq2[Record, error]) (out iter.Seq2[Record, error], count int, done func(), err error) {
	s, err := a.newSorter(order)
	if err != nil {
		return nil, 0, nil, err
	}

	var inErr error
	counted := func(yield func(Record, error) bool) {
		for r, err := range in {
			if err != nil {
				inErr = err
				yield(r, err)
				return
			}
			count++
			if !yield(r, nil) {
				return
			}
		}
	}

	start := time.Now()
	sorted, err := s.Sort(ctx, counted)
	if err != nil {
		_ = s.Close()
		return nil, 0, nil, classifySortError(stage, err, inErr)
	}

	stats := s.Stats()
	elapsed := time.Since(start)
	a.opts.metricsCollector.RecordSort(stage, stats.Items, stats.Segments, stats.BytesSpilled, elapsed)
	log.LogStage(ctx, stage, stats.Items, elapsed)
	if stats.Segments > 0 {
		log.DebugContext(ctx, "sort spilled",
			"stage", stage,
			"segments", stats.Segments,
			"bytes", stats.BytesSpilled,
		)
	}

	out = func(yield func(Record, error) bool) {
		for r, err := range sorted {
			if err != nil {
				yield(r, classifySortError(stage, err, nil))
				return
			}
			if !yield(r, nil) {
				return
			}
		}
	}

	return out, count, func() { _ = s.Close() }, nil
}

// classifySortError passes input and cancellation errors through and wraps
// everything else in a *SpillError.
func classifySortError(stage string, err, inErr error) error {
	if inErr != nil && errors.Is(err, inErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &SpillError{Stage: stage, Err: err}
}
