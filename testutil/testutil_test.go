package testutil

import (
	"strings"
	"testing"

	"github.com/hupe1980/rowchase/fmindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(4711)
	b := NewRNG(4711)

	assert.Equal(t, a.Bases(64), b.Bases(64))

	a.Reset()
	b.Reset()
	assert.Equal(t, a.GappedBases(128, 2, 5), b.GappedBases(128, 2, 5))
	assert.Equal(t, int64(4711), a.Seed())
}

func TestRNG_Bases(t *testing.T) {
	rng := NewRNG(1)

	s := rng.Bases(500)
	assert.Len(t, s, 500)
	assert.Empty(t, strings.Trim(s, "ACGT"))

	g := rng.GappedBases(500, 4, 10)
	assert.Len(t, g, 500)
	assert.Contains(t, g, "N")
}

func TestComponents_SmallText(t *testing.T) {
	// ACA$ sorts to $, A$, ACA$, CA$.
	c, o, err := Components([]Sequence{{Name: "r", Bases: "ACA"}}, 1)
	require.NoError(t, err)

	assert.Equal(t, []uint32{3, 2, 0, 1}, o.SA)
	assert.Equal(t, uint32(2), c.ZOff)
	assert.Equal(t, []byte{0, 1, 0, 0}, c.BWT)
	assert.Equal(t, []uint32{3, 0}, c.Offs)
	assert.Equal(t, []fmindex.Fragment{{Ref: 0, RefOffset: 0, JoinedOffset: 0, Len: 3}}, c.Fragments)
}

func TestComponents_Fragments(t *testing.T) {
	c, o, err := Components([]Sequence{
		{Name: "a", Bases: "NNACGTNNNTT"},
		{Name: "b", Bases: "GGN"},
	}, 2)
	require.NoError(t, err)

	assert.Equal(t, []fmindex.Fragment{
		{Ref: 0, RefOffset: 2, JoinedOffset: 0, Len: 4},
		{Ref: 0, RefOffset: 9, JoinedOffset: 4, Len: 2},
		{Ref: 1, RefOffset: 0, JoinedOffset: 6, Len: 2},
	}, c.Fragments)
	assert.Equal(t, []fmindex.Reference{{Name: "a", Len: 11}, {Name: "b", Len: 3}}, c.References)
	assert.Len(t, o.Text, 8)
}

func TestOracle_Expected(t *testing.T) {
	_, o, err := Components([]Sequence{{Name: "r", Bases: NewRNG(7).Bases(300)}}, 3)
	require.NoError(t, err)

	for row := uint32(0); row < o.Params.Len; row++ {
		steps, off := o.Expected(row)
		assert.Equal(t, o.SA[row], off)
		if o.Params.IsSampled(row) || row == o.Params.ZOff {
			assert.Zero(t, steps)
		}
	}
}
