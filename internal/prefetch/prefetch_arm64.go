// Copyright 2024 The Rowchase Authors
// SPDX-License-Identifier: MIT

//go:build !noasm && arm64

package prefetch

import "unsafe"

const kind = "prfm"

//go:noescape
func prefetchL1(addr unsafe.Pointer)

func line(b []byte) {
	prefetchL1(unsafe.Pointer(&b[0]))
}
