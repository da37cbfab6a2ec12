package testutil

import "math"

// BruteForceKendall computes Kendall's tau-b by comparing every pair of
// observations. It returns the statistic and the concordant minus
// discordant count.
func BruteForceKendall(x, y []float64) (float64, float64) {
	var concordant, discordant, tiedX, tiedY float64

	for i := range x {
		for j := i + 1; j < len(x); j++ {
			dx := x[i] - x[j]
			dy := y[i] - y[j]
			switch {
			case dx == 0 && dy == 0:
				// a joint tie is a tie in both coordinates
				tiedX++
				tiedY++
			case dx == 0:
				tiedX++
			case dy == 0:
				tiedY++
			case dx*dy > 0:
				concordant++
			default:
				discordant++
			}
		}
	}

	n := float64(len(x))
	total := n * (n - 1) / 2
	s := concordant - discordant
	return s / math.Sqrt((total-tiedX)*(total-tiedY)), s
}

// AdjustReference applies a multiple-testing procedure to p by sorting a
// copy, the way R's p.adjust does. method is one of "bonferroni", "bh"
// or "by".
func AdjustReference(method string, p []float64) []float64 {
	n := len(p)
	out := make([]float64, n)

	if method == "bonferroni" {
		for i, v := range p {
			out[i] = math.Min(v*float64(n), 1)
		}
		return out
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// descending p, stable insertion sort keeps this dependency free
	for i := 1; i < n; i++ {
		for j := i; j > 0 && p[order[j]] > p[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	q := 1.0
	if method == "by" {
		q = 0
		for i := 1; i <= n; i++ {
			q += 1 / float64(i)
		}
	}

	running := 1.0
	for k, idx := range order {
		rank := n - k
		v := math.Min(q*p[idx]*float64(n)/float64(rank), 1)
		running = math.Min(running, v)
		out[idx] = running
	}
	return out
}
