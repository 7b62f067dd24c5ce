package fmindex_test

import (
	"testing"

	"github.com/hupe1980/rowchase/fmindex"
	"github.com/hupe1980/rowchase/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_LFStepsOnePositionBack(t *testing.T) {
	rng := testutil.NewRNG(42)
	idx, o := testutil.MustBuild(t, []testutil.Sequence{
		{Name: "chr1", Bases: rng.Bases(700)},
		{Name: "chr2", Bases: rng.GappedBases(400, 3, 12)},
	}, 4)

	p := idx.Params()
	for row := uint32(0); row < p.Len; row++ {
		if row == p.ZOff {
			continue
		}
		var l fmindex.SideLocus
		l.InitFromRow(row, &p, idx.BWT())
		require.True(t, l.Valid())
		assert.Equal(t, row, l.Row())
		l.Prefetch()

		got := idx.MapLF(&l)
		require.Equal(t, o.RowOf(o.SA[row]-1), got, "row %d", row)
		assert.Equal(t, got, idx.LF(row))
	}
}

func TestIndex_MapLFOnZOffIsSelfLoop(t *testing.T) {
	idx, _ := testutil.MustBuild(t, []testutil.Sequence{{Name: "r", Bases: "GATTACA"}}, 1)
	p := idx.Params()
	assert.Equal(t, p.ZOff, idx.LF(p.ZOff))
}

func TestIndex_CharAtAndFchr(t *testing.T) {
	idx, o := testutil.MustBuild(t, []testutil.Sequence{{Name: "r", Bases: "ACGTTGCAAC"}}, 1)
	p := idx.Params()

	for row := uint32(0); row < p.Len; row++ {
		c, ok := idx.CharAt(row)
		if row == p.ZOff {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok)
		assert.Equal(t, o.Text[o.SA[row]-1], c)
	}

	// A=3 C=3 G=2 T=2, plus the end-marker row first.
	assert.Equal(t, [5]uint32{1, 4, 7, 9, 11}, idx.Fchr())
}

func TestIndex_Samples(t *testing.T) {
	idx, o := testutil.MustBuild(t, []testutil.Sequence{{Name: "r", Bases: testutil.NewRNG(3).Bases(100)}}, 3)
	p := idx.Params()

	require.Len(t, idx.Samples(), int(p.NumSamples()))
	for i := uint32(0); i < p.NumSamples(); i++ {
		assert.Equal(t, o.SA[i<<p.OffRate], idx.Sample(i))
	}
}

func TestNew_RejectsInconsistentComponents(t *testing.T) {
	c, _, err := testutil.Components([]testutil.Sequence{{Name: "r", Bases: "ACGTACGT"}}, 1)
	require.NoError(t, err)

	short := c
	short.Offs = c.Offs[:len(c.Offs)-1]
	_, err = fmindex.New(short)
	assert.ErrorIs(t, err, fmindex.ErrInvalidParams)

	empty := c
	empty.BWT = nil
	_, err = fmindex.New(empty)
	assert.ErrorIs(t, err, fmindex.ErrInvalidParams)

	badFrag := c
	badFrag.Fragments = []fmindex.Fragment{{Ref: 0, JoinedOffset: 0, Len: 4}}
	_, err = fmindex.New(badFrag)
	assert.ErrorIs(t, err, fmindex.ErrInvalidParams)

	badRef := c
	badRef.Fragments = []fmindex.Fragment{{Ref: 3, JoinedOffset: 0, Len: 8}}
	_, err = fmindex.New(badRef)
	assert.ErrorIs(t, err, fmindex.ErrInvalidParams)
}
