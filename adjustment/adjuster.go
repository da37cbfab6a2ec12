package adjustment

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeCount is returned when an Adjuster is built for a negative number of tests.
var ErrNegativeCount = errors.New("negative number of tests")

// Adjuster holds the running state of one adjustment pass. It is not safe
// for concurrent use: records are adjusted one at a time in rank order.
type Adjuster struct {
	method   Method
	n        int
	scale    float64 // N, times c(N) for BenjaminiYekutieli
	previous float64
}

// New returns an Adjuster for n surviving records.
func New(method Method, n int) (*Adjuster, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMethod, uint8(method))
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}

	scale := float64(n)
	if method == BenjaminiYekutieli {
		scale *= Harmonic(n)
	}

	return &Adjuster{
		method:   method,
		n:        n,
		scale:    scale,
		previous: 1,
	}, nil
}

// Method returns the configured method.
func (a *Adjuster) Method() Method { return a.method }

// N returns the number of tests the Adjuster was built for.
func (a *Adjuster) N() int { return a.n }

// Adjust returns the adjusted p-value of a record.
//
// rank is the 0-based position of the record in p-value descending order
// and must be in [0, N). For the step-up methods Adjust has to be called in
// strictly increasing rank order; Bonferroni ignores rank.
func (a *Adjuster) Adjust(p float64, rank int) float64 {
	if math.IsNaN(p) {
		return math.NaN()
	}

	if a.method == Bonferroni {
		return math.Min(p*a.scale, 1)
	}

	q := p * a.scale / float64(a.n-rank)
	q = math.Min(math.Min(q, a.previous), 1)
	a.previous = q

	return q
}
