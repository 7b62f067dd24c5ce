package fmindex

import "github.com/hupe1980/rowchase/internal/prefetch"

// SideLocus is the resolved physical location of one row: the side that
// holds it and the row's position within that side.
//
// A locus is valid from InitFromRow until MapLF consumes it or Invalidate is
// called. The zero value is invalid.
type SideLocus struct {
	row     uint32
	charOff uint32
	side    []byte
	// dollarBefore is set when the ZOff row precedes row within the side.
	dollarBefore bool
	isDollar     bool
	check        locusCheck
}

// InitFromRow resolves the locus of row. It touches no transform memory.
func (l *SideLocus) InitFromRow(row uint32, p *Params, bwt []byte) {
	s := row / SideRows
	base := int(s) * SideBytes
	sideStart := s * SideRows

	l.row = row
	l.charOff = row - sideStart
	l.side = bwt[base : base+SideBytes : base+SideBytes]
	l.dollarBefore = p.ZOff >= sideStart && p.ZOff < row
	l.isDollar = p.ZOff == row
	l.check.markValid()
}

// Prefetch starts loading the locus' side into cache and returns immediately.
func (l *SideLocus) Prefetch() {
	l.check.assertValid("Prefetch")
	prefetch.Line(l.side)
}

// Row returns the row the locus was resolved from.
func (l *SideLocus) Row() uint32 { return l.row }

// Valid reports whether the locus has been resolved and not invalidated.
func (l *SideLocus) Valid() bool { return l.side != nil }

// Invalidate drops the resolved location.
func (l *SideLocus) Invalidate() {
	l.side = nil
	l.check.invalidate()
}
