// Package prefetch issues non-blocking CPU cache prefetches.
//
// A prefetch is a hint: it never faults, never blocks and may be dropped by
// the hardware. Callers use it to start the memory fetch for data they will
// touch a little later, and do other work in between.
//
// Architecture-specific implementations:
//   - AMD64: PREFETCHT0
//   - ARM64: PRFM PLDL1KEEP
//   - Other (or the noasm build tag): portable fallback via a plain read
package prefetch
