package fmindex

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// Reference is one input sequence of the index.
type Reference struct {
	Name string `json:"name"`
	Len  uint32 `json:"len"`
}

// Fragment is a maximal unambiguous stretch of a reference. The joined
// text is the concatenation of all fragments in order.
type Fragment struct {
	Ref          uint32 `json:"ref"`
	RefOffset    uint32 `json:"ref_offset"`
	JoinedOffset uint32 `json:"joined_offset"`
	Len          uint32 `json:"len"`
}

// Coord is a position within a reference.
//
// Resolved is false when the hit it was computed for straddles the
// boundary between two fragments or references. That is a normal outcome
// for hits spanning concatenated sequences, not an error.
type Coord struct {
	Ref      uint32
	Offset   uint32
	RefLen   uint32
	Resolved bool
}

func (c Coord) String() string {
	if !c.Resolved {
		return "unresolved"
	}
	return fmt.Sprintf("%d:%d/%d", c.Ref, c.Offset, c.RefLen)
}

type refTable struct {
	refs    []Reference
	frags   []Fragment
	starts  *roaring.Bitmap
	textLen uint32
}

func newRefTable(refs []Reference, frags []Fragment, textLen uint32) (*refTable, error) {
	starts := roaring.New()

	var next uint64
	for i, f := range frags {
		switch {
		case f.Len == 0:
			return nil, fmt.Errorf("%w: fragment %d is empty", ErrInvalidParams, i)
		case uint64(f.JoinedOffset) != next:
			return nil, fmt.Errorf("%w: fragment %d starts at %d, want %d", ErrInvalidParams, i, f.JoinedOffset, next)
		case int(f.Ref) >= len(refs):
			return nil, fmt.Errorf("%w: fragment %d names reference %d of %d", ErrInvalidParams, i, f.Ref, len(refs))
		case uint64(f.RefOffset)+uint64(f.Len) > uint64(refs[f.Ref].Len):
			return nil, fmt.Errorf("%w: fragment %d overruns reference %q", ErrInvalidParams, i, refs[f.Ref].Name)
		}
		starts.Add(f.JoinedOffset)
		next += uint64(f.Len)
	}
	if next != uint64(textLen) {
		return nil, fmt.Errorf("%w: fragments cover %d symbols, text has %d", ErrInvalidParams, next, textLen)
	}
	starts.RunOptimize()

	return &refTable{
		refs:    refs,
		frags:   frags,
		starts:  starts,
		textLen: textLen,
	}, nil
}

func (t *refTable) lookup(qlen, off uint32) Coord {
	if off >= t.textLen {
		return Coord{}
	}
	// Rank counts fragment starts <= off; the first fragment starts at 0.
	f := t.frags[t.starts.Rank(off)-1]
	if uint64(off)+uint64(qlen) > uint64(f.JoinedOffset)+uint64(f.Len) {
		return Coord{}
	}
	return Coord{
		Ref:      f.Ref,
		Offset:   f.RefOffset + (off - f.JoinedOffset),
		RefLen:   t.refs[f.Ref].Len,
		Resolved: true,
	}
}
