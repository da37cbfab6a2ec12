package correlation

import (
	"cmp"
	"math"
	"slices"
)

// pearsonR computes the product-moment coefficient from the running sums of
// x, y, xy, x² and y².
func pearsonR(x, y []float64) float64 {
	n := float64(len(x))

	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	numerator := sumXY - sumX*sumY/n
	denominator := math.Sqrt((sumX2 - sumX*sumX/n) * (sumY2 - sumY*sumY/n))
	if denominator == 0 || math.IsNaN(denominator) {
		return math.NaN()
	}

	return clamp(numerator / denominator)
}

// Ranks returns the 1-based ranks of values. Tied values share the mean of
// the ranks they span. A NaN anywhere makes every rank NaN.
func Ranks(values []float64) []float64 {
	n := len(values)
	ranks := make([]float64, n)

	for _, v := range values {
		if math.IsNaN(v) {
			for i := range ranks {
				ranks[i] = math.NaN()
			}
			return ranks
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Compare(values[a], values[b])
	})

	for i := 0; i < n; {
		j := i + 1
		for j < n && values[order[j]] == values[order[i]] {
			j++
		}
		// Mean of the 1-based ranks i+1..j.
		mean := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = mean
		}
		i = j
	}

	return ranks
}
