// Package fmindex provides a read-only view over a compressed,
// Burrows-Wheeler-transform based full-text index of a set of references.
//
// An Index is immutable once built or decoded and is safe for use by any
// number of goroutines. It exposes exactly what a row-to-offset walk needs:
//
//   - Params: row count, sampling rate and the start-of-reference row (ZOff)
//   - the sparse offset-sample table (one entry per 2^OffRate rows)
//   - the raw transform data, laid out in 64-byte sides
//   - MapLF, the backward step, driven by a resolved SideLocus
//   - JoinedToTextOff, the joined-to-reference coordinate conversion
//
// # Side Layout
//
// The transform is stored in sides of one cache line each:
//
//	[0:16)  occurrence counts of A, C, G, T in all rows before the side (LE uint32)
//	[16:64) 192 rows, 2 bits per row, row i of the side at bits 2*(i%4) of byte i/4
//
// The row holding the end-of-text marker ($, the ZOff row) is stored as A and
// excluded from every count.
//
// # Loci and Prefetching
//
// A SideLocus names the side a row lives in. Resolving one is pure
// arithmetic; SideLocus.Prefetch starts the fetch of the side without
// blocking, and MapLF consumes it. Callers interleave independent walks so
// that one walk's fetch overlaps another's computation.
//
// Building the `rowchasedebug` tag adds protocol checks to SideLocus: MapLF
// panics on a locus that was never resolved or was already consumed.
package fmindex
