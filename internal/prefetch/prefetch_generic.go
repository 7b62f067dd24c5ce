// Copyright 2024 The Rowchase Authors
// SPDX-License-Identifier: MIT

//go:build (!arm64 && !amd64) || noasm

package prefetch

const kind = "touch"

// line is the portable fallback. The read pulls the line into cache but,
// unlike a real prefetch, stalls until it arrives.
func line(b []byte) {
	_ = b[0]
}
