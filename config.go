package paircorr

import (
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/paircorr/adjustment"
	"github.com/hupe1980/paircorr/codec"
	"github.com/hupe1980/paircorr/correlation"
)

// Default configuration values.
const (
	DefaultCorrelationThreshold = 0.7
	DefaultSortMemoryBudget     = 2_000_000
)

// Config describes one analysis. It is immutable once passed to New.
type Config struct {
	// CorrelationMethod selects the statistic.
	CorrelationMethod correlation.Method `json:"correlation_method"`

	// AdjustmentMethod selects the multiple-testing correction.
	AdjustmentMethod adjustment.Method `json:"adjustment_method"`

	// CorrelationThreshold drops results whose |statistic| is below it.
	CorrelationThreshold float64 `json:"correlation_threshold"`

	// SortMemoryBudget is the number of records a sort holds in memory
	// before it spills a segment to disk.
	SortMemoryBudget int `json:"sort_memory_budget"`

	// AllVsAll evaluates every pair. When false only pairs with equal
	// primary labels are evaluated.
	AllVsAll bool `json:"all_vs_all"`

	// MaterializeSecondDataset forces (true) or forbids (false) buffering
	// the second dataset. Nil picks automatically from its size.
	MaterializeSecondDataset *bool `json:"materialize_second_dataset"`

	// TopN keeps only the N results with the largest |statistic|. Nil keeps
	// all of them.
	TopN *int `json:"top_n"`

	// SecondDatasetHasSecondaryAnnotation marks the second column of the
	// second dataset as an annotation rather than a sample.
	SecondDatasetHasSecondaryAnnotation bool `json:"second_dataset_has_secondary_annotation"`
}

// DefaultConfig returns an all-vs-all Pearson analysis with
// Benjamini-Hochberg adjustment.
func DefaultConfig() Config {
	return Config{
		CorrelationMethod:    correlation.Pearson,
		AdjustmentMethod:     adjustment.BenjaminiHochberg,
		CorrelationThreshold: DefaultCorrelationThreshold,
		SortMemoryBudget:     DefaultSortMemoryBudget,
		AllVsAll:             true,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if !c.CorrelationMethod.Valid() {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, correlation.ErrInvalidMethod, uint8(c.CorrelationMethod))
	}
	if !c.AdjustmentMethod.Valid() {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, adjustment.ErrInvalidMethod, uint8(c.AdjustmentMethod))
	}
	if math.IsNaN(c.CorrelationThreshold) || c.CorrelationThreshold < 0 {
		return fmt.Errorf("%w: correlation_threshold must be >= 0, got %v", ErrInvalidConfig, c.CorrelationThreshold)
	}
	if c.SortMemoryBudget < 1 {
		return fmt.Errorf("%w: sort_memory_budget must be positive, got %d", ErrInvalidConfig, c.SortMemoryBudget)
	}
	if c.TopN != nil && *c.TopN < 1 {
		return fmt.Errorf("%w: top_n must be positive, got %d", ErrInvalidConfig, *c.TopN)
	}
	return nil
}

func (c Config) clone() Config {
	if c.MaterializeSecondDataset != nil {
		v := *c.MaterializeSecondDataset
		c.MaterializeSecondDataset = &v
	}
	if c.TopN != nil {
		v := *c.TopN
		c.TopN = &v
	}
	return c
}

// LoadConfig decodes a configuration from r. Missing keys keep their
// DefaultConfig values. A nil codec means codec.Default.
func LoadConfig(r io.Reader, c codec.Codec) (Config, error) {
	if c == nil {
		c = codec.Default
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := c.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
