package paircorr

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/paircorr/adjustment"
	"github.com/hupe1980/paircorr/correlation"
	"github.com/hupe1980/paircorr/dataset"
	"github.com/hupe1980/paircorr/testutil"
)

func sampleHeader(label string, n int) []string {
	h := []string{label}
	for i := range n {
		h = append(h, fmt.Sprintf("s%d", i))
	}
	return h
}

func memoryDataset(labels []string, values [][]float64) *dataset.Memory {
	rows := make([]dataset.Row, len(values))
	for i, v := range values {
		rows[i] = dataset.Row{Label: labels[i], Values: v}
	}
	return dataset.NewMemory(sampleHeader("label", len(values[0])), rows)
}

func gaussianDataset(rng *testutil.RNG, prefix string, rows, samples int) *dataset.Memory {
	return memoryDataset(testutil.RowNames(prefix, rows), rng.GaussianRows(rows, samples))
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func adjustmentName(m adjustment.Method) string {
	switch m {
	case adjustment.Bonferroni:
		return "bonferroni"
	case adjustment.BenjaminiYekutieli:
		return "by"
	default:
		return "bh"
	}
}

// reference evaluates cfg without any of the pipeline machinery.
func reference(t *testing.T, cfg Config, first, second *dataset.Memory) (records []Record, evaluated, nan int) {
	t.Helper()

	n := len(first.At(0).Values)
	corr, err := correlation.New(cfg.CorrelationMethod, n)
	require.NoError(t, err)

	var all []Record
	for i := range first.Len() {
		a := first.At(i)
		for j := range second.Len() {
			b := second.At(j)
			if !cfg.AllVsAll && a.Label != b.Label {
				continue
			}
			stat, p := corr.Correlate(a.Values, b.Values)
			if math.IsNaN(p) {
				nan++
				continue
			}
			all = append(all, Record{
				Primary: a.Label, Secondary: b.Label, Annotation: b.Annotation,
				Statistic: stat, PValue: p, Evaluated: true,
			})
		}
	}

	ps := make([]float64, len(all))
	for i, r := range all {
		ps[i] = r.PValue
	}
	adjusted := testutil.AdjustReference(adjustmentName(cfg.AdjustmentMethod), ps)

	for i, r := range all {
		r.AdjustedPValue = adjusted[i]
		r.Adjusted = true
		if math.Abs(r.Statistic) >= cfg.CorrelationThreshold {
			records = append(records, r)
		}
	}
	return records, len(all), nan
}

func pairKey(r Record) string {
	return r.Primary + "|" + r.Secondary + "|" + r.Annotation
}

func requireSameRecords(t *testing.T, want, got []Record) {
	t.Helper()

	require.Len(t, got, len(want))

	// Matching-only runs repeat keys; the statistic tells them apart.
	byKey := func(a, b Record) int {
		return cmp.Or(cmp.Compare(pairKey(a), pairKey(b)), cmp.Compare(a.Statistic, b.Statistic))
	}
	want = slices.SortedFunc(slices.Values(want), byKey)
	got = slices.SortedFunc(slices.Values(got), byKey)

	for i := range want {
		w, g := want[i], got[i]
		require.Equal(t, pairKey(w), pairKey(g))
		require.Equal(t, w.Statistic, g.Statistic, pairKey(w))
		require.Equal(t, w.PValue, g.PValue, pairKey(w))
		require.InDelta(t, w.AdjustedPValue, g.AdjustedPValue, 1e-12, pairKey(w))
		require.True(t, g.Evaluated)
		require.True(t, g.Adjusted)
	}
}
