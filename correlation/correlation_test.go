package correlation

import (
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/paircorr/testutil"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"pearson", Pearson},
		{"Spearman", Spearman},
		{" KENDALL ", Kendall},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := ParseMethod(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}

	_, err := ParseMethod("chi2")
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestMethodText(t *testing.T) {
	b, err := Kendall.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Kendall", string(b))

	var m Method
	require.NoError(t, m.UnmarshalText([]byte("spearman")))
	assert.Equal(t, Spearman, m)

	_, err = Method(0).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidMethod)
	assert.Equal(t, "Method(9)", Method(9).String())
}

func TestNew(t *testing.T) {
	_, err := New(Pearson, 2)
	assert.ErrorIs(t, err, ErrTooFewSamples)

	_, err = New(Method(42), 10)
	assert.ErrorIs(t, err, ErrInvalidMethod)

	c, err := New(Spearman, 3)
	require.NoError(t, err)
	assert.Equal(t, Spearman, c.Method())
	assert.Equal(t, 3, c.N())
	assert.True(t, c.NeedsPrepare())
}

func TestPearsonKnownValues(t *testing.T) {
	c, err := New(Pearson, 5)
	require.NoError(t, err)

	r, p := c.Correlate([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 5, 4, 5})

	assert.InDelta(t, 0.7745966692414834, r, 1e-12)
	assert.InDelta(t, 0.12403, p, 1e-5)
}

func TestPearsonMatchesOracles(t *testing.T) {
	rng := testutil.NewRNG(7)
	rows := rng.GaussianRows(20, 15)

	c, err := New(Pearson, 15)
	require.NoError(t, err)

	for i := 1; i < len(rows); i++ {
		x, y := rows[i-1], rows[i]
		r, _ := c.Correlate(x, y)

		assert.InDelta(t, stat.Correlation(x, y, nil), r, 1e-9)

		want, err := stats.Pearson(x, y)
		require.NoError(t, err)
		assert.InDelta(t, want, r, 1e-9)
	}
}

func TestSpearmanKnownValues(t *testing.T) {
	c, err := New(Spearman, 5)
	require.NoError(t, err)

	rho, p := c.Correlate([]float64{1, 2, 3, 4, 5}, []float64{5, 6, 7, 8, 7})

	assert.InDelta(t, 0.8207826816681233, rho, 1e-12)
	assert.InDelta(t, 0.08858700531354381, p, 1e-9)
}

func TestSpearmanIsPearsonOnRanks(t *testing.T) {
	rng := testutil.NewRNG(11)
	rows := rng.TiedRows(10, 12, 4)

	s, err := New(Spearman, 12)
	require.NoError(t, err)
	p, err := New(Pearson, 12)
	require.NoError(t, err)

	for i := 1; i < len(rows); i++ {
		rho, pv := s.Correlate(rows[i-1], rows[i])
		r, pr := p.Correlate(Ranks(rows[i-1]), Ranks(rows[i]))

		if math.IsNaN(r) {
			assert.True(t, math.IsNaN(rho))
			continue
		}
		assert.InDelta(t, r, rho, 1e-12)
		assert.InDelta(t, pr, pv, 1e-12)
	}
}

func TestRanks(t *testing.T) {
	assert.Equal(t, []float64{1, 2.5, 2.5, 4}, Ranks([]float64{10, 20, 20, 30}))
	assert.Equal(t, []float64{3, 1, 2}, Ranks([]float64{0.3, -1, 0}))
	assert.Equal(t, []float64{2, 2, 2}, Ranks([]float64{7, 7, 7}))

	for _, r := range Ranks([]float64{1, math.NaN(), 3}) {
		assert.True(t, math.IsNaN(r))
	}
}

func TestKendallKnownValues(t *testing.T) {
	c, err := New(Kendall, 5)
	require.NoError(t, err)

	tau, p := c.Correlate([]float64{12, 2, 1, 12, 2}, []float64{1, 4, 7, 1, 0})

	assert.InDelta(t, -0.47140452079103173, tau, 1e-12)
	assert.InDelta(t, 0.2827454599327748, p, 1e-9)
}

func TestKendallMatchesBruteForce(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for _, levels := range []int{2, 3, 5, 1000} {
		rows := rng.TiedRows(12, 17, levels)

		c, err := New(Kendall, 17)
		require.NoError(t, err)

		for i := 1; i < len(rows); i++ {
			tau, p := c.Correlate(rows[i-1], rows[i])
			want, _ := testutil.BruteForceKendall(rows[i-1], rows[i])

			if math.IsNaN(want) {
				assert.True(t, math.IsNaN(tau))
				continue
			}
			assert.InDelta(t, want, tau, 1e-12, "levels=%d row=%d", levels, i)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		}
	}
}

func TestKendallWithoutTies(t *testing.T) {
	c, err := New(Kendall, 4)
	require.NoError(t, err)

	tau, _ := c.Correlate([]float64{1, 2, 3, 4}, []float64{4, 3, 2, 1})
	assert.InDelta(t, -1.0, tau, 1e-12)

	tau, _ = c.Correlate([]float64{1, 2, 3, 4}, []float64{1, 3, 2, 4})
	assert.InDelta(t, 2.0/3.0, tau, 1e-12)
}

func TestSelfCorrelation(t *testing.T) {
	rng := testutil.NewRNG(3)
	x := rng.GaussianRows(1, 10)[0]

	for _, m := range []Method{Pearson, Spearman, Kendall} {
		t.Run(m.String(), func(t *testing.T) {
			c, err := New(m, 10)
			require.NoError(t, err)

			r, p := c.Correlate(x, x)
			assert.InDelta(t, 1.0, r, 1e-12)
			assert.False(t, math.IsNaN(p))
			assert.Less(t, p, 0.01)
		})
	}
}

func TestDegenerateInput(t *testing.T) {
	constant := []float64{5, 5, 5, 5}
	varied := []float64{1, 2, 3, 4}
	withNaN := []float64{1, math.NaN(), 3, 4}

	for _, m := range []Method{Pearson, Spearman, Kendall} {
		t.Run(m.String(), func(t *testing.T) {
			c, err := New(m, 4)
			require.NoError(t, err)

			for _, pair := range [][2][]float64{
				{constant, varied},
				{varied, constant},
				{withNaN, varied},
				{varied, []float64{1, 2}},
			} {
				r, p := c.Correlate(pair[0], pair[1])
				assert.True(t, math.IsNaN(r))
				assert.True(t, math.IsNaN(p))
			}
		})
	}
}

func TestStatisticBounds(t *testing.T) {
	rng := testutil.NewRNG(99)
	rows := rng.GaussianRows(30, 8)

	for _, m := range []Method{Pearson, Spearman, Kendall} {
		c, err := New(m, 8)
		require.NoError(t, err)

		for i := 1; i < len(rows); i++ {
			r, p := c.Correlate(rows[i-1], rows[i])
			assert.GreaterOrEqual(t, r, -1.0)
			assert.LessOrEqual(t, r, 1.0)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		}
	}
}

func BenchmarkCorrelate(b *testing.B) {
	rng := testutil.NewRNG(1)
	rows := rng.GaussianRows(2, 256)

	for _, m := range []Method{Pearson, Spearman, Kendall} {
		b.Run(m.String(), func(b *testing.B) {
			c, err := New(m, 256)
			if err != nil {
				b.Fatal(err)
			}
			px, py := c.Prepare(rows[0]), c.Prepare(rows[1])

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				c.CorrelatePrepared(px, py)
			}
		})
	}
}
