package prefetch

// LineSize is the cache line size assumed by Range.
const LineSize = 64

// Line prefetches the cache line holding b[0]. Empty slices are ignored.
func Line(b []byte) {
	if len(b) == 0 {
		return
	}
	line(b)
}

// Range prefetches every cache line covered by b.
func Range(b []byte) {
	for len(b) > 0 {
		line(b)
		if len(b) <= LineSize {
			return
		}
		b = b[LineSize:]
	}
}

// Kind reports the prefetch mechanism in use.
func Kind() string {
	return kind
}
