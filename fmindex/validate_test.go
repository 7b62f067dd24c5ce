package fmindex_test

import (
	"context"
	"testing"

	"github.com/hupe1980/rowchase/fmindex"
	"github.com/hupe1980/rowchase/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Clean(t *testing.T) {
	rng := testutil.NewRNG(9)
	for _, offRate := range []uint32{0, 1, 3, 5} {
		idx, _ := testutil.MustBuild(t, []testutil.Sequence{
			{Name: "x", Bases: rng.GappedBases(600, 2, 8)},
			{Name: "y", Bases: rng.Bases(50)},
		}, offRate)
		assert.NoError(t, idx.Validate(context.Background()), "offRate %d", offRate)
	}
}

func TestValidate_SingleBase(t *testing.T) {
	idx, _ := testutil.MustBuild(t, []testutil.Sequence{{Name: "x", Bases: "T"}}, 0)
	assert.NoError(t, idx.Validate(context.Background()))
}

func TestValidate_DetectsBadSample(t *testing.T) {
	c, _, err := testutil.Components([]testutil.Sequence{{Name: "x", Bases: testutil.NewRNG(1).Bases(200)}}, 2)
	require.NoError(t, err)

	c.Offs = append([]uint32(nil), c.Offs...)
	c.Offs[3]++
	idx, err := fmindex.New(c)
	require.NoError(t, err)

	err = idx.Validate(context.Background())
	var ce *fmindex.CorruptError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, fmindex.ErrCorrupt)
	assert.Equal(t, uint32(3<<2), ce.Row)
}

func TestValidate_DetectsBrokenTransform(t *testing.T) {
	c, _, err := testutil.Components([]testutil.Sequence{{Name: "x", Bases: testutil.NewRNG(2).Bases(200)}}, 2)
	require.NoError(t, err)

	c.BWT = append([]byte(nil), c.BWT...)
	r := (c.ZOff + 1) % uint32(len(c.BWT))
	c.BWT[r] = (c.BWT[r] + 1) % 4
	idx, err := fmindex.New(c)
	require.NoError(t, err)

	assert.ErrorIs(t, idx.Validate(context.Background()), fmindex.ErrCorrupt)
}

func TestValidate_Canceled(t *testing.T) {
	idx, _ := testutil.MustBuild(t, []testutil.Sequence{{Name: "x", Bases: "ACGT"}}, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, idx.Validate(ctx), context.Canceled)
}
