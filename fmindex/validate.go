package fmindex

import (
	"context"

	"github.com/bits-and-blooms/bitset"
)

const validateCheckEvery = 1 << 16

// Validate walks the whole index backwards from the end-of-text row and
// checks that the walk visits every row exactly once, agrees with every
// stored sample and ends on ZOff. It is O(Len) and meant for load time.
func (idx *Index) Validate(ctx context.Context) error {
	p := &idx.params
	visited := bitset.New(uint(p.Len))

	// Row 0 is the empty suffix, whose offset is the text length.
	row := uint32(0)
	off := p.TextLen()

	var l SideLocus
	for step := uint32(0); ; step++ {
		if step%validateCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if visited.Test(uint(row)) {
			return &CorruptError{Row: row, Reason: "row visited twice"}
		}
		visited.Set(uint(row))

		if p.IsSampled(row) {
			if got := idx.offs[p.SampleIndex(row)]; got != off {
				return &CorruptError{Row: row, Reason: "stored sample disagrees with walk"}
			}
		}
		if row == p.ZOff {
			if off != 0 {
				return &CorruptError{Row: row, Reason: "start-of-reference row reached early"}
			}
			break
		}
		if off == 0 {
			return &CorruptError{Row: row, Reason: "walk never reached the start-of-reference row"}
		}

		l.InitFromRow(row, p, idx.sides)
		next := idx.MapLF(&l)
		l.Invalidate()
		if next >= p.Len {
			return &CorruptError{Row: row, Reason: "backward step left the matrix"}
		}
		row = next
		off--
	}

	if visited.Count() != uint(p.Len) {
		return &CorruptError{Row: p.ZOff, Reason: "walk did not cover every row"}
	}
	return nil
}
