package adjustment

import "math"

const (
	// exactHarmonicLimit bounds the n for which Harmonic sums term by term.
	exactHarmonicLimit = 1_000_000

	eulerMascheroni = 0.57721566490153286060651209008240243
)

// Harmonic returns the n-th harmonic number Σ_{k=1..n} 1/k, the
// Benjamini-Yekutieli constant c(n). Above exactHarmonicLimit the asymptotic
// expansion is used; its error there is far below float64 resolution.
func Harmonic(n int) float64 {
	if n <= 0 {
		return 0
	}

	if n <= exactHarmonicLimit {
		var sum float64
		for k := n; k >= 1; k-- { // smallest terms first
			sum += 1 / float64(k)
		}
		return sum
	}

	return harmonicExpansion(float64(n))
}

func harmonicExpansion(x float64) float64 {
	x2 := x * x
	return math.Log(x) + eulerMascheroni + 1/(2*x) - 1/(12*x2) + 1/(120*x2*x2)
}
