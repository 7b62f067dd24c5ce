package testutil

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/hupe1980/rowchase/fmindex"
	"github.com/stretchr/testify/require"
)

// Sequence is a named reference. Bases other than ACGT (any case) are
// ambiguous and split the reference into fragments.
type Sequence struct {
	Name  string
	Bases string
}

// Oracle holds the uncompressed suffix array a test index was built from.
type Oracle struct {
	Params fmindex.Params

	// Text is the joined text, one symbol (0..3) per position.
	Text []byte

	// SA maps a row to the joined offset of its suffix.
	SA []uint32

	// ISA maps a joined offset (including the end marker at TextLen) to its row.
	ISA []uint32

	Fragments []fmindex.Fragment
}

// RowOf returns the row whose suffix starts at joined offset off.
func (o *Oracle) RowOf(off uint32) uint32 {
	return o.ISA[off]
}

// Expected forward-simulates a chase from row: the number of backward steps
// until a ZOff or sampled row is reached, and the resulting joined offset.
func (o *Oracle) Expected(row uint32) (steps, off uint32) {
	start := o.SA[row]
	for k := uint32(0); ; k++ {
		r := o.ISA[start-k]
		if r == o.Params.ZOff || o.Params.IsSampled(r) {
			return k, o.SA[r] + k
		}
	}
}

// Components builds index components from seqs by naive suffix sorting.
func Components(seqs []Sequence, offRate uint32) (fmindex.Components, *Oracle, error) {
	var (
		text  []byte
		refs  = make([]fmindex.Reference, len(seqs))
		frags []fmindex.Fragment
	)

	for i, s := range seqs {
		refs[i] = fmindex.Reference{Name: s.Name, Len: uint32(len(s.Bases))}

		runStart := -1
		flush := func(end int) {
			if runStart >= 0 {
				frags = append(frags, fmindex.Fragment{
					Ref:          uint32(i),
					RefOffset:    uint32(runStart),
					JoinedOffset: uint32(len(text) - (end - runStart)),
					Len:          uint32(end - runStart),
				})
				runStart = -1
			}
		}
		for j := 0; j < len(s.Bases); j++ {
			c, ok := symbol(s.Bases[j])
			if !ok {
				flush(j)
				continue
			}
			if runStart < 0 {
				runStart = j
			}
			text = append(text, c)
		}
		flush(len(s.Bases))
	}

	n := len(text)
	sa := make([]uint32, n+1)
	for i := range sa {
		sa[i] = uint32(i)
	}
	// A suffix that is a prefix of another sorts first, which puts the
	// empty suffix (the end marker) at row 0.
	sort.Slice(sa, func(a, b int) bool {
		return bytes.Compare(text[sa[a]:], text[sa[b]:]) < 0
	})

	isa := make([]uint32, n+1)
	bwt := make([]byte, n+1)
	var zOff uint32
	for row, off := range sa {
		isa[off] = uint32(row)
		if off == 0 {
			zOff = uint32(row)
			continue
		}
		bwt[row] = text[off-1]
	}

	p := fmindex.Params{Len: uint32(n + 1), OffRate: offRate, ZOff: zOff}
	if err := p.Validate(); err != nil {
		return fmindex.Components{}, nil, err
	}
	offs := make([]uint32, p.NumSamples())
	for i := range offs {
		offs[i] = sa[uint32(i)<<offRate]
	}

	c := fmindex.Components{
		BWT:        bwt,
		ZOff:       zOff,
		OffRate:    offRate,
		Offs:       offs,
		References: refs,
		Fragments:  frags,
	}
	o := &Oracle{
		Params:    p,
		Text:      text,
		SA:        sa,
		ISA:       isa,
		Fragments: frags,
	}
	return c, o, nil
}

// Build is Components followed by fmindex.New.
func Build(seqs []Sequence, offRate uint32) (*fmindex.Index, *Oracle, error) {
	c, o, err := Components(seqs, offRate)
	if err != nil {
		return nil, nil, err
	}
	idx, err := fmindex.New(c)
	if err != nil {
		return nil, nil, fmt.Errorf("assemble index: %w", err)
	}
	return idx, o, nil
}

// MustBuild is Build that fails the test on error.
func MustBuild(tb testing.TB, seqs []Sequence, offRate uint32) (*fmindex.Index, *Oracle) {
	tb.Helper()
	idx, o, err := Build(seqs, offRate)
	require.NoError(tb, err)
	return idx, o
}

func symbol(b byte) (byte, bool) {
	switch b {
	case 'A', 'a':
		return 0, true
	case 'C', 'c':
		return 1, true
	case 'G', 'g':
		return 2, true
	case 'T', 't':
		return 3, true
	default:
		return 0, false
	}
}
