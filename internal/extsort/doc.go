// Package extsort implements a stable external sort-merge.
//
// A Sorter holds at most a fixed number of items in memory per pass. Each
// full buffer is split into runs sorted in parallel, merged, and written as
// one spill segment of checksummed, compressed blocks. Once the input is
// exhausted the segments are memory-mapped and merged lazily through a heap:
//
//	s, err := extsort.New(budget, cmp, codec, extsort.WithTempDir(dir))
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	sorted, err := s.Sort(ctx, input)
//	if err != nil {
//	    return err
//	}
//	for v, err := range sorted {
//	    ...
//	}
//
// Inputs that fit in the budget never touch the disk.
package extsort
