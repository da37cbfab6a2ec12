// Package adjustment implements multiple-testing corrections of p-values.
//
// The step-up procedures (Benjamini-Hochberg and Benjamini-Yekutieli) are
// applied while streaming records in p-value descending order, keeping a
// running minimum so that adjusted values read in ascending raw-p order
// never decrease:
//
//	a, err := adjustment.New(adjustment.BenjaminiHochberg, n)
//	if err != nil {
//	    return err
//	}
//	for rank, rec := range sortedByPDescending {
//	    rec.Adjusted = a.Adjust(rec.P, rank)
//	}
//
// Bonferroni does not depend on the order and needs no sort.
package adjustment
