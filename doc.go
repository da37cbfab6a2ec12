// Package paircorr computes pairwise correlations between the rows of two
// datasets and corrects the p-values for multiple comparisons.
//
// Every row of the first dataset (e.g. genes) is correlated with the rows of
// the second (e.g. gene expression modulators). The product is usually far
// larger than memory, so results flow through disk-backed external sorts
// and never materialize before the final, thresholded and optionally
// truncated result.
//
// # Quick Start
//
//	cfg := paircorr.DefaultConfig()
//	cfg.CorrelationMethod = correlation.Spearman
//	cfg.AdjustmentMethod = adjustment.BenjaminiYekutieli
//
//	a, err := paircorr.New(cfg, paircorr.WithTempDir("/fast/nvme"))
//	if err != nil {
//	    return err
//	}
//
//	genes := dataset.NewTSV(dataset.FileSource("mrna.tsv"))
//	gems := dataset.NewTSV(dataset.FileSource("mirna.tsv"))
//
//	res, err := a.Run(ctx, genes, gems)
//
// # Pipeline
//
// A run validates the sample headers of both datasets, evaluates all pairs
// on a bounded worker pool, drops pairs whose statistic is undefined (a
// constant row), ranks the rest by p-value with an external sort, adjusts
// the p-values in rank order, keeps |statistic| >= CorrelationThreshold and,
// with TopN, sorts the survivors by |statistic| and keeps the first TopN.
//
// Bonferroni needs no ranking; its records are spooled through the sorter's
// segment format in evaluation order instead.
//
// # Matching-only mode
//
// With AllVsAll false only pairs with equal primary labels are evaluated,
// e.g. a gene with its own copy-number or methylation rows. Set
// SecondDatasetHasSecondaryAnnotation and read the second dataset with
// dataset.WithAnnotationColumn when its second column holds site ids.
//
// # Remote datasets
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("cohort-1/"))
//	path, _ := dataset.Stage(ctx, store, "methylation.tsv", tmpDir)
//	gems := dataset.NewTSV(dataset.FileSource(path), dataset.WithAnnotationColumn())
//
// # Configuration files
//
//	cfg, err := paircorr.LoadConfig(f, codec.GoJSON{})
//
// Recognized keys: correlation_method, adjustment_method,
// correlation_threshold, sort_memory_budget, all_vs_all,
// materialize_second_dataset, top_n and
// second_dataset_has_secondary_annotation.
package paircorr
