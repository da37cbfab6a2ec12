package paircorr

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordEvaluation is called once per run after all pairs were
	// correlated. pairs counts the correlated pairs, NaN results included.
	RecordEvaluation(pairs, nanFiltered int64, duration time.Duration)

	// RecordSort is called after each external sort. stage is "rank",
	// "spool" or "truncate".
	RecordSort(stage string, items int64, segments int, bytesSpilled int64, duration time.Duration)

	// RecordRun is called after each run. err is nil if successful.
	RecordRun(evaluated, results int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEvaluation(int64, int64, time.Duration)        {}
func (NoopMetricsCollector) RecordSort(string, int64, int, int64, time.Duration) {}
func (NoopMetricsCollector) RecordRun(int, int, time.Duration, error)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount        atomic.Int64
	RunErrors       atomic.Int64
	RunTotalNanos   atomic.Int64
	PairsEvaluated  atomic.Int64
	NaNFiltered     atomic.Int64
	EvalTotalNanos  atomic.Int64
	SortCount       atomic.Int64
	SortItems       atomic.Int64
	SortSegments    atomic.Int64
	SortBytes       atomic.Int64
	SortTotalNanos  atomic.Int64
	ResultsReturned atomic.Int64
}

// RecordEvaluation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEvaluation(pairs, nanFiltered int64, duration time.Duration) {
	b.PairsEvaluated.Add(pairs)
	b.NaNFiltered.Add(nanFiltered)
	b.EvalTotalNanos.Add(duration.Nanoseconds())
}

// RecordSort implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSort(_ string, items int64, segments int, bytesSpilled int64, duration time.Duration) {
	b.SortCount.Add(1)
	b.SortItems.Add(items)
	b.SortSegments.Add(int64(segments))
	b.SortBytes.Add(bytesSpilled)
	b.SortTotalNanos.Add(duration.Nanoseconds())
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_, results int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	b.ResultsReturned.Add(int64(results))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:        b.RunCount.Load(),
		RunErrors:       b.RunErrors.Load(),
		RunAvgNanos:     avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
		PairsEvaluated:  b.PairsEvaluated.Load(),
		NaNFiltered:     b.NaNFiltered.Load(),
		SortCount:       b.SortCount.Load(),
		SortItems:       b.SortItems.Load(),
		SortSegments:    b.SortSegments.Load(),
		SortBytes:       b.SortBytes.Load(),
		SortAvgNanos:    avg(b.SortTotalNanos.Load(), b.SortCount.Load()),
		ResultsReturned: b.ResultsReturned.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount        int64
	RunErrors       int64
	RunAvgNanos     int64
	PairsEvaluated  int64
	NaNFiltered     int64
	SortCount       int64
	SortItems       int64
	SortSegments    int64
	SortBytes       int64
	SortAvgNanos    int64
	ResultsReturned int64
}
