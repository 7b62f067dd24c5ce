//go:build rowchasedebug

package fmindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocus_DebugProtocol(t *testing.T) {
	bwt := []byte{3, 2, 0, 1, 0}
	idx, err := New(Components{
		BWT:        bwt,
		ZOff:       2,
		OffRate:    0,
		Offs:       []uint32{4, 3, 0, 2, 1},
		References: []Reference{{Name: "r", Len: 4}},
		Fragments:  []Fragment{{Len: 4}},
	})
	assert.NoError(t, err)
	p := idx.Params()

	var l SideLocus
	assert.Panics(t, func() { l.Prefetch() }, "unresolved locus")

	l.InitFromRow(1, &p, idx.BWT())
	l.Prefetch()
	idx.MapLF(&l)
	assert.Panics(t, func() { idx.MapLF(&l) }, "consumed locus")

	l.InitFromRow(1, &p, idx.BWT())
	l.Invalidate()
	assert.Panics(t, func() { idx.MapLF(&l) }, "invalidated locus")

	assert.True(t, DebugChecks)
}
