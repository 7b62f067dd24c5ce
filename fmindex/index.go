package fmindex

import (
	"fmt"
	"math"
)

// Components are the precomputed parts an Index is assembled from.
// Producing them (suffix sorting) is the job of an index builder.
type Components struct {
	// BWT holds one symbol (0=A, 1=C, 2=G, 3=T) per row. The symbol at ZOff
	// is the end-of-text marker and is ignored.
	BWT []byte

	// ZOff is the row whose suffix is the whole joined text.
	ZOff uint32

	// OffRate is log2 of the sampling stride.
	OffRate uint32

	// Offs holds the joined offset of every sampled row, indexed by row >> OffRate.
	Offs []uint32

	References []Reference
	Fragments  []Fragment
}

// Index is an immutable, shareable view over a transform-based index.
type Index struct {
	params Params
	sides  []byte
	fchr   [5]uint32
	offs   []uint32
	refs   *refTable
}

// New assembles an Index from its components.
func New(c Components) (*Index, error) {
	if len(c.BWT) == 0 || uint64(len(c.BWT)) > math.MaxUint32 {
		return nil, &ParamsError{Field: "len", Value: uint64(len(c.BWT)), Reason: "must be in [1, 2^32)"}
	}
	p := Params{Len: uint32(len(c.BWT)), OffRate: c.OffRate, ZOff: c.ZOff}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sides, occ, err := packSides(c.BWT, &p)
	if err != nil {
		return nil, err
	}

	var fchr [5]uint32
	fchr[0] = 1
	for i := 0; i < 4; i++ {
		fchr[i+1] = fchr[i] + occ[i]
	}

	return newIndex(p, sides, fchr, c.Offs, c.References, c.Fragments)
}

func newIndex(p Params, sides []byte, fchr [5]uint32, offs []uint32, refs []Reference, frags []Fragment) (*Index, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(sides) != int(p.NumSides())*SideBytes {
		return nil, fmt.Errorf("%w: transform holds %d bytes, want %d", ErrCorrupt, len(sides), int(p.NumSides())*SideBytes)
	}
	if uint64(len(offs)) != uint64(p.NumSamples()) {
		return nil, &ParamsError{Field: "samples", Value: uint64(len(offs)), Reason: fmt.Sprintf("want %d", p.NumSamples())}
	}
	if fchr[0] != 1 || fchr[4] != p.Len {
		return nil, fmt.Errorf("%w: symbol counts %v do not cover %d rows", ErrCorrupt, fchr, p.Len)
	}

	rt, err := newRefTable(refs, frags, p.TextLen())
	if err != nil {
		return nil, err
	}

	return &Index{
		params: p,
		sides:  sides,
		fchr:   fchr,
		offs:   offs,
		refs:   rt,
	}, nil
}

// Params returns the index parameters.
func (idx *Index) Params() Params { return idx.params }

// Sample returns the joined offset stored in sample slot i.
func (idx *Index) Sample(i uint32) uint32 { return idx.offs[i] }

// Samples returns the sample table. It must not be modified.
func (idx *Index) Samples() []uint32 { return idx.offs }

// BWT returns the raw side data. It must not be modified.
func (idx *Index) BWT() []byte { return idx.sides }

// Fchr returns the first-column boundaries: rows [Fchr[c], Fchr[c+1])
// begin with symbol c.
func (idx *Index) Fchr() [5]uint32 { return idx.fchr }

// References returns the reference table.
func (idx *Index) References() []Reference { return idx.refs.refs }

// Fragments returns the unambiguous stretches making up the joined text.
func (idx *Index) Fragments() []Fragment { return idx.refs.frags }

// CharAt returns the transform symbol of row. ok is false for the ZOff row.
func (idx *Index) CharAt(row uint32) (c byte, ok bool) {
	if row == idx.params.ZOff {
		return 0, false
	}
	s := row / SideRows
	side := idx.sides[int(s)*SideBytes : int(s+1)*SideBytes]
	return sideChar(side, row-s*SideRows), true
}

// MapLF performs one backward step from the locus' row and returns the row
// of the preceding text position. The ZOff row has no predecessor and maps
// to itself.
func (idx *Index) MapLF(l *SideLocus) uint32 {
	l.check.consume()
	if l.isDollar {
		return l.row
	}
	c := sideChar(l.side, l.charOff)
	cnt := sideOcc(l.side, c) + sideCount(l.side, c, l.charOff)
	if c == 0 && l.dollarBefore {
		cnt--
	}
	return idx.fchr[c] + cnt
}

// LF is MapLF for callers that do not pipeline.
func (idx *Index) LF(row uint32) uint32 {
	var l SideLocus
	l.InitFromRow(row, &idx.params, idx.sides)
	return idx.MapLF(&l)
}

// JoinedToTextOff converts a joined offset into a reference coordinate for a
// hit of length qlen. Hits that leave their fragment come back unresolved.
func (idx *Index) JoinedToTextOff(qlen, off uint32) Coord {
	return idx.refs.lookup(qlen, off)
}
