package paircorr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/paircorr/adjustment"
	"github.com/hupe1980/paircorr/codec"
	"github.com/hupe1980/paircorr/correlation"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, correlation.Pearson, cfg.CorrelationMethod)
	assert.Equal(t, adjustment.BenjaminiHochberg, cfg.AdjustmentMethod)
	assert.Equal(t, 0.7, cfg.CorrelationThreshold)
	assert.Equal(t, 2_000_000, cfg.SortMemoryBudget)
	assert.True(t, cfg.AllVsAll)
	assert.Nil(t, cfg.MaterializeSecondDataset)
	assert.Nil(t, cfg.TopN)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"correlation method", func(c *Config) { c.CorrelationMethod = 0 }},
		{"adjustment method", func(c *Config) { c.AdjustmentMethod = 9 }},
		{"negative threshold", func(c *Config) { c.CorrelationThreshold = -0.1 }},
		{"zero budget", func(c *Config) { c.SortMemoryBudget = 0 }},
		{"zero top n", func(c *Config) { c.TopN = intPtr(0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

			_, err := New(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	// Thresholds above one are valid and simply keep nothing.
	cfg := DefaultConfig()
	cfg.CorrelationThreshold = 1.5
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	const doc = `{
		"correlation_method": "kendall",
		"adjustment_method": "by",
		"correlation_threshold": 0.5,
		"all_vs_all": false,
		"materialize_second_dataset": false,
		"top_n": 10
	}`

	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}, nil} {
		cfg, err := LoadConfig(strings.NewReader(doc), c)
		require.NoError(t, err)

		assert.Equal(t, correlation.Kendall, cfg.CorrelationMethod)
		assert.Equal(t, adjustment.BenjaminiYekutieli, cfg.AdjustmentMethod)
		assert.Equal(t, 0.5, cfg.CorrelationThreshold)
		assert.Equal(t, DefaultSortMemoryBudget, cfg.SortMemoryBudget, "missing keys keep defaults")
		assert.False(t, cfg.AllVsAll)
		require.NotNil(t, cfg.MaterializeSecondDataset)
		assert.False(t, *cfg.MaterializeSecondDataset)
		require.NotNil(t, cfg.TopN)
		assert.Equal(t, 10, *cfg.TopN)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	for _, doc := range []string{
		`{"correlation_method": "chi2"}`,
		`{"adjustment_method": "holm"}`,
		`{"sort_memory_budget": -1}`,
		`{"top_n": 0}`,
		`{not json`,
	} {
		_, err := LoadConfig(strings.NewReader(doc), nil)
		assert.ErrorIs(t, err, ErrInvalidConfig, doc)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CorrelationMethod = correlation.Spearman
	cfg.TopN = intPtr(3)

	data := codec.MustMarshal(codec.Default, cfg)
	assert.Contains(t, string(data), `"correlation_method":"Spearman"`)

	got, err := LoadConfig(strings.NewReader(string(data)), nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestAnalysisConfigIsolated(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopN = intPtr(5)

	a, err := New(cfg)
	require.NoError(t, err)

	*cfg.TopN = 50
	got := a.Config()
	assert.Equal(t, 5, *got.TopN)

	*got.TopN = 500
	assert.Equal(t, 5, *a.Config().TopN)
}
