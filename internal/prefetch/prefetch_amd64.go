// Copyright 2024 The Rowchase Authors
// SPDX-License-Identifier: MIT

//go:build !noasm && amd64

package prefetch

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

var (
	hasPrefetch bool
	kind        = "touch"
)

func init() {
	// PREFETCHT0 is an SSE instruction.
	hasPrefetch = cpu.X86.HasSSE2
	if hasPrefetch {
		kind = "prefetcht0"
	}
}

//go:noescape
func prefetchT0(addr unsafe.Pointer)

func line(b []byte) {
	if hasPrefetch {
		prefetchT0(unsafe.Pointer(&b[0]))
		return
	}
	_ = b[0]
}
