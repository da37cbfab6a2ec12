package paircorr

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/paircorr/internal/blockcodec"
	"github.com/hupe1980/paircorr/internal/fs"
	"github.com/hupe1980/paircorr/internal/pairgen"
)

// Compression selects how spill segments are compressed.
type Compression = blockcodec.Compression

// Spill compression choices.
const (
	CompressionNone = blockcodec.None
	CompressionLZ4  = blockcodec.LZ4
	CompressionZSTD = blockcodec.ZSTD
)

// DefaultBatchSize is the number of first-dataset rows evaluated per batch.
const DefaultBatchSize = 64

type options struct {
	workers          int
	tempDir          string
	compression      Compression
	ioLimit          int64
	memoryLimit      int64
	rankCacheSize    int
	batchSize        int
	fs               fs.FileSystem
	metricsCollector MetricsCollector
	logger           *Logger
}

func defaultOptions() options {
	return options{
		workers:          runtime.GOMAXPROCS(0),
		compression:      CompressionLZ4,
		rankCacheSize:    pairgen.DefaultCacheSize,
		batchSize:        DefaultBatchSize,
		fs:               fs.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

// Option configures how an Analysis runs. Options never change results.
type Option func(*options)

// WithWorkers bounds the goroutines that evaluate pairs and sort spill runs.
// Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithTempDir sets the directory spill segments are written to.
// Defaults to os.TempDir().
func WithTempDir(dir string) Option {
	return func(o *options) {
		o.tempDir = dir
	}
}

// WithSpillCompression sets the compression of spill segments.
// Defaults to LZ4.
func WithSpillCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithIOLimit throttles spill writes to bytesPerSec. Zero means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

// WithMemoryLimit caps the bytes a materialized second dataset may hold.
// When the automatic choice would exceed it the analysis streams instead;
// a forced materialization fails with ErrMemoryLimitExceeded.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithRankCacheSize sets how many prepared rows of a streamed second
// dataset are cached. Zero disables the cache.
func WithRankCacheSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.rankCacheSize = n
		}
	}
}

// WithBatchSize sets how many first-dataset rows are evaluated together.
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &paircorr.BasicMetricsCollector{}
//	a, _ := paircorr.New(cfg, paircorr.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Pairs: %d, spilled: %d bytes\n", stats.PairsEvaluated, stats.SortBytes)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := paircorr.NewJSONLogger(slog.LevelInfo)
//	a, _ := paircorr.New(cfg, paircorr.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func withFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}
