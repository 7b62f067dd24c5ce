// Package mmap provides read-only memory-mapped file access.
//
// Index files are mapped rather than read so that the transform data can be
// used in place: the row chaser touches a handful of cache lines per step,
// and the page cache is shared between every process serving the same index.
//
// # Usage
//
//	m, err := mmap.Open("genome.rcfm")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//	_ = m.Advise(mmap.AccessRandom)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (Advise is a no-op)
//
// # Thread Safety
//
// A Mapping is safe for concurrent readers. Close is idempotent; callers
// must not touch Bytes() after Close returns.
package mmap
