package adjustment

import (
	"cmp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/paircorr/testutil"
)

// adjustAll sorts p descending, feeds the Adjuster in rank order and returns
// the adjusted values in the input order.
func adjustAll(t *testing.T, m Method, p []float64) []float64 {
	t.Helper()

	a, err := New(m, len(p))
	require.NoError(t, err)

	order := make([]int, len(p))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		return cmp.Compare(p[j], p[i])
	})

	out := make([]float64, len(p))
	for rank, idx := range order {
		out[idx] = a.Adjust(p[idx], rank)
	}
	return out
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"Bonferroni", Bonferroni},
		{"benjaminihochberg", BenjaminiHochberg},
		{"BH", BenjaminiHochberg},
		{"BenjaminiYekutieli", BenjaminiYekutieli},
		{"by", BenjaminiYekutieli},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := ParseMethod(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}

	_, err := ParseMethod("holm")
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestMethodText(t *testing.T) {
	b, err := BenjaminiYekutieli.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "BenjaminiYekutieli", string(b))

	var m Method
	require.NoError(t, m.UnmarshalText([]byte("bonferroni")))
	assert.Equal(t, Bonferroni, m)
	assert.Error(t, m.UnmarshalText([]byte("nope")))
}

func TestRequiresRanking(t *testing.T) {
	assert.False(t, Bonferroni.RequiresRanking())
	assert.True(t, BenjaminiHochberg.RequiresRanking())
	assert.True(t, BenjaminiYekutieli.RequiresRanking())
}

func TestNew(t *testing.T) {
	_, err := New(Method(0), 10)
	assert.ErrorIs(t, err, ErrInvalidMethod)

	_, err = New(Bonferroni, -1)
	assert.ErrorIs(t, err, ErrNegativeCount)

	a, err := New(BenjaminiHochberg, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, a.N())
}

func TestKnownValues(t *testing.T) {
	p := []float64{0.005, 0.011, 0.02, 0.04, 0.13}

	// p.adjust(p, "bonferroni")
	assert.InDeltaSlice(t, []float64{0.025, 0.055, 0.1, 0.2, 0.65}, adjustAll(t, Bonferroni, p), 1e-12)

	// p.adjust(p, "BH")
	assert.InDeltaSlice(t, []float64{0.025, 0.0275, 0.1 / 3, 0.05, 0.13}, adjustAll(t, BenjaminiHochberg, p), 1e-12)

	// p.adjust(p, "BY"), c(5) = 137/60
	c5 := 137.0 / 60.0
	want := []float64{0.025 * c5, 0.0275 * c5, 0.1 / 3 * c5, 0.05 * c5, 0.13 * c5}
	assert.InDeltaSlice(t, want, adjustAll(t, BenjaminiYekutieli, p), 1e-12)
}

func TestClampedAtOne(t *testing.T) {
	p := []float64{0.5, 0.6, 0.9}

	for _, m := range []Method{Bonferroni, BenjaminiHochberg, BenjaminiYekutieli} {
		for _, q := range adjustAll(t, m, p) {
			assert.LessOrEqual(t, q, 1.0)
		}
	}
	assert.Equal(t, []float64{1, 1, 1}, adjustAll(t, Bonferroni, p))
}

func TestMatchesReference(t *testing.T) {
	rng := testutil.NewRNG(4711)

	p := make([]float64, 500)
	for i := range p {
		p[i] = rng.Float64() * rng.Float64()
	}

	assert.InDeltaSlice(t, testutil.AdjustReference("bonferroni", p), adjustAll(t, Bonferroni, p), 1e-12)
	assert.InDeltaSlice(t, testutil.AdjustReference("bh", p), adjustAll(t, BenjaminiHochberg, p), 1e-12)
	assert.InDeltaSlice(t, testutil.AdjustReference("by", p), adjustAll(t, BenjaminiYekutieli, p), 1e-12)
}

func TestStepUpMonotonicity(t *testing.T) {
	rng := testutil.NewRNG(42)

	p := make([]float64, 1000)
	for i := range p {
		p[i] = rng.Float64()
	}
	// Duplicates exercise ties.
	copy(p[500:600], p[:100])

	for _, m := range []Method{BenjaminiHochberg, BenjaminiYekutieli} {
		t.Run(m.String(), func(t *testing.T) {
			q := adjustAll(t, m, p)

			order := make([]int, len(p))
			for i := range order {
				order[i] = i
			}
			slices.SortStableFunc(order, func(i, j int) int { return cmp.Compare(p[i], p[j]) })

			for k := 1; k < len(order); k++ {
				assert.LessOrEqual(t, q[order[k-1]], q[order[k]])
			}
			for i := range p {
				assert.GreaterOrEqual(t, q[i], p[i])
			}
		})
	}
}

func TestBonferroniBound(t *testing.T) {
	rng := testutil.NewRNG(1)

	for _, n := range []int{1, 2, 17, 1000} {
		a, err := New(Bonferroni, n)
		require.NoError(t, err)

		for range 50 {
			p := rng.Float64()
			q := a.Adjust(p, 0)
			assert.GreaterOrEqual(t, q, p)
			assert.InDelta(t, min(p*float64(n), 1), q, 1e-15)
		}
	}
}

func TestHarmonic(t *testing.T) {
	assert.Equal(t, 0.0, Harmonic(0))
	assert.Equal(t, 1.0, Harmonic(1))
	assert.InDelta(t, 137.0/60.0, Harmonic(5), 1e-14)

	// The expansion agrees with the exact sum where they meet.
	assert.InDelta(t, Harmonic(exactHarmonicLimit), harmonicExpansion(exactHarmonicLimit), 1e-9)
	assert.Greater(t, Harmonic(exactHarmonicLimit+1), Harmonic(exactHarmonicLimit))
}
