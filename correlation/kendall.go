package correlation

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"
)

type observation struct {
	x, y float64
}

// tieMoments accumulates, over runs of tied values of length t,
// the tied pair count Σt(t-1)/2 and the variance terms
// Σt(t-1)(2t+5), Σt(t-1) and Σt(t-1)(t-2).
type tieMoments struct {
	pairs int64
	vt    float64
	v1    float64
	v2    float64
}

func (m *tieMoments) addRun(length int) {
	if length < 2 {
		return
	}
	t := float64(length)
	m.pairs += int64(length) * int64(length-1) / 2
	m.vt += t * (t - 1) * (2*t + 5)
	m.v1 += t * (t - 1)
	m.v2 += t * (t - 1) * (t - 2)
}

// kendall computes tau-b and its asymptotic two-sided p-value in O(n log n).
//
// Observations are sorted by (x, y); a stable merge sort by y then counts
// the swaps, which equal the discordant pairs among pairs tied in neither
// coordinate.
func (c *Correlator) kendall(x, y []float64) (float64, float64) {
	n := len(x)

	obs := make([]observation, n)
	for i := range obs {
		obs[i] = observation{x: x[i], y: y[i]}
	}
	slices.SortFunc(obs, func(a, b observation) int {
		if r := cmp.Compare(a.x, b.x); r != 0 {
			return r
		}
		return cmp.Compare(a.y, b.y)
	})

	var xTies tieMoments
	var jointTies int64
	for i := 0; i < n; {
		j := i + 1
		for j < n && obs[j].x == obs[i].x {
			j++
		}
		xTies.addRun(j - i)

		// Inside a run of tied x the y values are ascending, so joint ties
		// are contiguous.
		for k := i; k < j; {
			l := k + 1
			for l < j && obs[l].y == obs[k].y {
				l++
			}
			jointTies += int64(l-k) * int64(l-k-1) / 2
			k = l
		}
		i = j
	}

	swaps := mergeSortByY(obs)

	var yTies tieMoments
	for i := 0; i < n; {
		j := i + 1
		for j < n && obs[j].y == obs[i].y {
			j++
		}
		yTies.addRun(j - i)
		i = j
	}

	total := int64(n) * int64(n-1) / 2
	if xTies.pairs == total || yTies.pairs == total {
		return math.NaN(), math.NaN()
	}

	s := float64(total - xTies.pairs - yTies.pairs + jointTies - 2*swaps)
	tau := clamp(s / math.Sqrt(float64(total-xTies.pairs)) / math.Sqrt(float64(total-yTies.pairs)))

	nf := float64(n)
	v0 := nf * (nf - 1) * (2*nf + 5)
	variance := (v0-xTies.vt-yTies.vt)/18 +
		xTies.v1*yTies.v1/(2*nf*(nf-1)) +
		xTies.v2*yTies.v2/(9*nf*(nf-1)*(nf-2))

	if variance <= 0 {
		return tau, math.NaN()
	}

	z := s / math.Sqrt(variance)

	return tau, 2 * distuv.UnitNormal.CDF(-math.Abs(z))
}

// mergeSortByY stably sorts obs by y and returns the number of inversions,
// i.e. the number of times an element jumps over a strictly greater one.
func mergeSortByY(obs []observation) int64 {
	n := len(obs)
	src := obs
	dst := make([]observation, n)
	inPlace := true

	var swaps int64
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)

			i, j, k := lo, mid, lo
			for i < mid && j < hi {
				if src[j].y < src[i].y {
					dst[k] = src[j]
					j++
					swaps += int64(mid - i)
				} else {
					dst[k] = src[i]
					i++
				}
				k++
			}
			k += copy(dst[k:], src[i:mid])
			copy(dst[k:], src[j:hi])
		}
		src, dst = dst, src
		inPlace = !inPlace
	}

	if !inPlace {
		copy(obs, src)
	}

	return swaps
}
