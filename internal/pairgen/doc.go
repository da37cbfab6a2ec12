// Package pairgen generates the pairs of an analysis.
//
// For each row of the first dataset a Generator yields the rows of the
// second. Materialized keeps the second dataset in memory with its rows
// prepared once and, in matching-only mode, a roaring bitmap per label so
// only matching rows are visited. Streamed re-reads the second dataset per
// row and caches prepared vectors in an LRU.
package pairgen
