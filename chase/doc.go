// Package chase resolves a row of a transform-based index to its offset in
// the joined reference text.
//
// A Chaser walks backwards through the index, one LF step at a time, until it
// lands on a row whose offset is known: the start-of-reference row (offset 0)
// or a sampled row. The offset of the starting row is then the known offset
// plus the number of steps taken.
//
// Every step is a random access into a large index, so the walk is bound by
// memory latency. A Chaser therefore splits each step in two: Prepare
// resolves the locus of the current row and prefetches it, Advance consumes
// it. A caller running many chasers can keep one prefetch in flight per
// chaser and advance them round-robin:
//
//	for pending > 0 {
//	    for _, c := range chasers {
//	        if c.Done() {
//	            continue
//	        }
//	        if err := c.Advance(); err != nil { // also prefetches the next step
//	            return err
//	        }
//	        if c.Done() {
//	            pending--
//	        }
//	    }
//	}
//
// FlatOffset and SplitOffset are one-shot drivers for callers that resolve a
// single row and do not pipeline.
//
// A Chaser is not safe for concurrent use. The index it borrows is never
// modified and may be shared by any number of chasers.
package chase
