package correlation

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// MinSamples is the smallest vector length a Correlator accepts.
const MinSamples = 3

// ErrTooFewSamples is returned when a Correlator is built for fewer than MinSamples samples.
var ErrTooFewSamples = errors.New("too few samples")

// Correlator computes the statistic and the two-sided p-value for pairs of
// vectors of a fixed length. It is built once per run and is safe for
// concurrent use: it holds no mutable state.
type Correlator struct {
	method    Method
	n         int
	df        float64
	studentsT distuv.StudentsT
}

// New returns a Correlator for vectors of length n.
func New(method Method, n int) (*Correlator, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMethod, uint8(method))
	}
	if n < MinSamples {
		return nil, fmt.Errorf("%w: need at least %d, got %d", ErrTooFewSamples, MinSamples, n)
	}

	df := float64(n - 2)

	return &Correlator{
		method:    method,
		n:         n,
		df:        df,
		studentsT: distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df},
	}, nil
}

// Method returns the configured method.
func (c *Correlator) Method() Method { return c.method }

// N returns the vector length the Correlator was built for.
func (c *Correlator) N() int { return c.n }

// NeedsPrepare reports whether Prepare transforms its input. Callers use it
// to decide whether caching prepared vectors is worthwhile.
func (c *Correlator) NeedsPrepare() bool { return c.method == Spearman }

// Prepare returns the per-vector form consumed by CorrelatePrepared.
// For Spearman these are the mean ranks; other methods use the values as is.
// The returned slice must not be modified.
func (c *Correlator) Prepare(values []float64) []float64 {
	if c.method == Spearman {
		return Ranks(values)
	}
	return values
}

// Correlate returns the statistic and the two-sided p-value of x against y.
//
// Degenerate input (a constant vector, a NaN value, or a length other than
// N) yields (NaN, NaN). Callers must filter such results.
func (c *Correlator) Correlate(x, y []float64) (float64, float64) {
	return c.CorrelatePrepared(c.Prepare(x), c.Prepare(y))
}

// CorrelatePrepared is Correlate for vectors already passed through Prepare.
func (c *Correlator) CorrelatePrepared(px, py []float64) (float64, float64) {
	if len(px) != c.n || len(py) != c.n || degenerate(px) || degenerate(py) {
		return math.NaN(), math.NaN()
	}

	switch c.method {
	case Pearson, Spearman:
		r := pearsonR(px, py)
		return r, c.tTestPValue(r)
	case Kendall:
		return c.kendall(px, py)
	default:
		return math.NaN(), math.NaN()
	}
}

// tTestPValue converts a correlation coefficient into a two-sided p-value
// under Student's t with n-2 degrees of freedom.
func (c *Correlator) tTestPValue(r float64) float64 {
	if math.IsNaN(r) {
		return math.NaN()
	}

	t := r * math.Sqrt(c.df) / math.Sqrt(1-r*r)

	switch {
	case math.IsNaN(t):
		return math.NaN()
	case math.IsInf(t, 0):
		return 0
	}

	// 2*min(CDF(t), 1-CDF(t)) evaluated on the lower tail, which keeps
	// very small p-values exact.
	return 2 * c.studentsT.CDF(-math.Abs(t))
}

// degenerate reports whether v is constant or holds a NaN.
func degenerate(v []float64) bool {
	if len(v) == 0 {
		return true
	}
	first := v[0]
	if math.IsNaN(first) {
		return true
	}
	constant := true
	for _, x := range v[1:] {
		if math.IsNaN(x) {
			return true
		}
		if x != first {
			constant = false
		}
	}
	return constant
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
