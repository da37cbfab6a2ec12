package paircorr

import (
	"context"
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/paircorr/adjustment"
	"github.com/hupe1980/paircorr/correlation"
	"github.com/hupe1980/paircorr/dataset"
	"github.com/hupe1980/paircorr/internal/pairgen"
	"github.com/hupe1980/paircorr/internal/resource"
)

// autoMaterializeLimitMiB is the largest second dataset, in whole MiB,
// buffered when the configuration leaves the choice open.
const autoMaterializeLimitMiB = 100

// Result is the outcome of a run.
//
// Evaluated records always pass through the external sorter before they
// are adjusted: ranked by p-value for BH and BY, spooled in evaluation
// order for Bonferroni, which needs N first. Either way a run larger than
// the sort buffer writes spill files to the temporary directory.
type Result struct {
	// Records are the surviving pairs: ordered by raw p-value descending,
	// or by |statistic| descending when TopN is set.
	Records []Record

	// CountBeforeTruncation is the number of records that passed the
	// threshold before TopN was applied.
	CountBeforeTruncation int

	// Evaluated is the number of pairs the adjustment counted (N).
	Evaluated int

	// NaNFiltered is the number of pairs dropped for an undefined statistic.
	NaNFiltered int

	// Materialized reports whether the second dataset was buffered.
	Materialized bool
}

// Analysis runs correlation analyses with a fixed configuration.
// It is safe for concurrent use.
type Analysis struct {
	cfg  Config
	opts options
	rc   *resource.Controller
}

// New validates cfg and creates an Analysis.
func New(cfg Config, optFns ...Option) (*Analysis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Analysis{
		cfg:  cfg.clone(),
		opts: opts,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:   opts.memoryLimit,
			MaxWorkers:         int64(opts.workers),
			IOLimitBytesPerSec: opts.ioLimit,
		}),
	}, nil
}

// Config returns a copy of the configuration.
func (a *Analysis) Config() Config {
	return a.cfg.clone()
}

// Run correlates every row of first with the rows of second.
//
// A run is atomic: it returns the full result or an error, never a partial
// result. Pairs whose statistic is undefined are not an error; they are
// counted in Result.NaNFiltered.
func (a *Analysis) Run(ctx context.Context, first, second dataset.Dataset) (*Result, error) {
	start := time.Now()
	log := a.opts.logger.WithRun(uuid.NewString())

	log.DebugContext(ctx, "analysis started",
		"correlation", a.cfg.CorrelationMethod,
		"adjustment", a.cfg.AdjustmentMethod,
		"all_vs_all", a.cfg.AllVsAll,
	)

	res, err := a.run(ctx, log, first, second)

	elapsed := time.Since(start)
	if err != nil {
		a.opts.metricsCollector.RecordRun(0, 0, elapsed, err)
	} else {
		a.opts.metricsCollector.RecordRun(res.Evaluated, len(res.Records), elapsed, nil)
	}
	log.LogRun(ctx, res, elapsed, err)

	if err != nil {
		return nil, err
	}
	return res, nil
}

func (a *Analysis) run(ctx context.Context, log *Logger, first, second dataset.Dataset) (*Result, error) {
	n, err := checkSamples(ctx, first, second, a.cfg.SecondDatasetHasSecondaryAnnotation)
	if err != nil {
		return nil, err
	}

	head, err := firstRow(ctx, first)
	if err != nil {
		return nil, err
	}
	if err := checkRow("first", head, n); err != nil {
		return nil, err
	}

	corr, err := correlation.New(a.cfg.CorrelationMethod, n)
	if err != nil {
		return nil, fmt.Errorf("paircorr: %w", err)
	}

	gen, materialized, release, err := a.generator(ctx, log, second, corr)
	if err != nil {
		return nil, err
	}
	defer release()

	ev := &evaluator{
		n:         n,
		corr:      corr,
		gen:       gen,
		workers:   a.opts.workers,
		batchSize: a.opts.batchSize,
	}

	// Bonferroni needs N before the first adjustment but no order, so the
	// records are spooled in evaluation order.
	stage, order := stageRank, byPValueDesc
	if !a.cfg.AdjustmentMethod.RequiresRanking() {
		stage, order = stageSpool, inputOrder
	}

	evalStart := time.Now()
	ranked, total, closeRanked, err := a.sortStage(ctx, log, stage, order, ev.records(ctx, first))
	if err != nil {
		return nil, err
	}
	defer closeRanked()

	nan := ev.nan.Load()
	a.opts.metricsCollector.RecordEvaluation(ev.pairs.Load(), nan, time.Since(evalStart))
	log.LogStage(ctx, "evaluate", ev.pairs.Load(), time.Since(evalStart))
	log.LogNaNFiltered(ctx, nan)

	adj, err := adjustment.New(a.cfg.AdjustmentMethod, total)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Evaluated:    total,
		NaNFiltered:  int(nan),
		Materialized: materialized,
	}

	kept := a.adjust(adj, ranked)

	if a.cfg.TopN == nil {
		for r, err := range kept {
			if err != nil {
				return nil, err
			}
			res.Records = append(res.Records, r)
		}
		res.CountBeforeTruncation = len(res.Records)
		return res, nil
	}

	top, filtered, closeTop, err := a.sortStage(ctx, log, stageTruncate, byAbsStatisticDesc, kept)
	if err != nil {
		return nil, err
	}
	defer closeTop()

	res.CountBeforeTruncation = filtered
	res.Records = make([]Record, 0, min(*a.cfg.TopN, filtered))
	for r, err := range top {
		if err != nil {
			return nil, err
		}
		res.Records = append(res.Records, r)
		if len(res.Records) == *a.cfg.TopN {
			break
		}
	}

	return res, nil
}

// adjust assigns ranks 0..N-1 in stream order, adjusts every record and
// keeps those whose |statistic| reaches the threshold.
func (a *Analysis) adjust(adj *adjustment.Adjuster, ranked iter.Seq2[Record, error]) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		rank := 0
		for r, err := range ranked {
			if err != nil {
				yield(r, err)
				return
			}

			r.AdjustedPValue = adj.Adjust(r.PValue, rank)
			r.Adjusted = true
			rank++

			if math.Abs(r.Statistic) < a.cfg.CorrelationThreshold {
				continue
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

// generator decides whether to buffer the second dataset. An explicit
// setting wins; otherwise datasets within the auto limit are buffered if
// the memory controller admits them.
func (a *Analysis) generator(ctx context.Context, log *Logger, second dataset.Dataset, corr *correlation.Correlator) (pairgen.Generator, bool, func(), error) {
	mode := pairgen.AllVsAll
	if !a.cfg.AllVsAll {
		mode = pairgen.MatchingOnly
	}

	var prepare pairgen.PrepareFunc
	if corr.NeedsPrepare() {
		prepare = corr.Prepare
	}

	noop := func() {}
	streamed := func() (pairgen.Generator, bool, func(), error) {
		g, err := pairgen.NewStreamed(second, mode, prepare, a.opts.rankCacheSize)
		if err != nil {
			return nil, false, nil, err
		}
		return g, false, noop, nil
	}

	forced := a.cfg.MaterializeSecondDataset != nil
	if forced && !*a.cfg.MaterializeSecondDataset {
		return streamed()
	}

	size := int64(-1)
	if s, ok := second.(dataset.Sized); ok {
		sz, err := s.Size(ctx)
		if err != nil {
			return nil, false, nil, err
		}
		size = sz
	}
	if !forced && !withinAutoMaterializeLimit(size) {
		return streamed()
	}

	var mem *dataset.Memory
	if size < 0 {
		m, err := dataset.Collect(ctx, second)
		if err != nil {
			return nil, false, nil, err
		}
		mem = m
		size, _ = m.Size(ctx)
	}

	if err := a.rc.AcquireMemory(size); err != nil {
		if forced {
			return nil, false, nil, fmt.Errorf("paircorr: materialize second dataset: %w", err)
		}
		log.WarnContext(ctx, "second dataset exceeds the memory limit, streaming it instead",
			"bytes", size,
			"limit", a.rc.MemoryLimit(),
		)
		return streamed()
	}
	release := func() { a.rc.ReleaseMemory(size) }

	if mem == nil {
		m, err := dataset.Collect(ctx, second)
		if err != nil {
			release()
			return nil, false, nil, err
		}
		mem = m
	}

	g, err := pairgen.NewMaterialized(ctx, mem, mode, prepare)
	if err != nil {
		release()
		return nil, false, nil, err
	}

	log.DebugContext(ctx, "second dataset materialized",
		"rows", g.Len(),
		"bytes", size,
	)
	return g, true, release, nil
}
