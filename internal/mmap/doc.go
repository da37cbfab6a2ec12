// Package mmap provides read-only memory-mapped file access.
//
// Spill segments are written once and then read front to back during the
// merge; mapping them avoids a copy through kernel buffers and lets the
// kernel read ahead:
//
//	m, err := mmap.Open(path)
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix uses mmap(2) and madvise(2). Windows uses MapViewOfFile and ignores
// access hints.
//
// Bytes is safe for concurrent reads. Close is idempotent, but callers must
// ensure no goroutine touches the slice after Close returns.
package mmap
