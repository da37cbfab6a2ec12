// Package blockcodec frames records into checksummed, optionally
// compressed blocks (LZ4 or ZSTD). It is the on-disk format of the
// external sorter's spill segments.
package blockcodec
