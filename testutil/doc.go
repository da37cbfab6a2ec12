// Package testutil provides testing utilities for paircorr.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded generators for expression-like data, TSV fixtures,
// and brute-force reference implementations used as oracles.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	rows := rng.GaussianRows(100, 12)   // 100 rows of 12 samples
//	tied := rng.TiedRows(100, 12, 4)    // values drawn from {0..3}
//
// # Fixtures
//
//	content := testutil.FormatTSV(header, names, rows)
//	path := testutil.WriteTSV(t, t.TempDir(), "a.tsv", content)
package testutil
