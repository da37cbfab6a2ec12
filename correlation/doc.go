// Package correlation implements the pairwise correlation kernels.
//
// Three methods are supported and selected once per run:
//
//   - [Pearson]: product-moment coefficient, p-value from Student's t with
//     n-2 degrees of freedom.
//   - [Spearman]: Pearson over mean ranks (ties share the mean rank).
//   - [Kendall]: tie-corrected tau-b computed in O(n log n), p-value from the
//     asymptotic normal approximation of the statistic's variance under ties.
//
// # Usage
//
//	c, err := correlation.New(correlation.Spearman, len(samples))
//	if err != nil {
//	    return err
//	}
//	px := c.Prepare(x) // once per row
//	py := c.Prepare(y)
//	stat, p := c.CorrelatePrepared(px, py)
//
// A constant vector has no defined coefficient. Such pairs, and pairs with
// NaN values, produce (NaN, NaN); callers filter them rather than treating
// them as results.
package correlation
