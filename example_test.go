package rowchase_test

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/hupe1980/rowchase"
	"github.com/hupe1980/rowchase/chase"
	"github.com/hupe1980/rowchase/testutil"
)

func ExampleResolver_Offset() {
	ctx := context.Background()
	idx, o, err := testutil.Build([]testutil.Sequence{
		{Name: "chr1", Bases: "GATTACA"},
		{Name: "chr2", Bases: "CCGGNNTTAA"},
	}, 1)
	if err != nil {
		log.Fatal(err)
	}

	r, err := rowchase.Open(ctx, rowchase.FromIndex(idx))
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	// Joined offsets: chr1 is [0, 7), chr2 is [7, 11) and [11, 15) around
	// the Ns.
	for _, off := range []uint32{2, 5, 8, 12} {
		coord, err := r.Offset(ctx, o.RowOf(off), 3)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(coord)
	}
	// Output:
	// 0:2/7
	// unresolved
	// 1:1/10
	// 1:7/10
}

// Example_pipelined keeps one prefetch in flight per chaser and advances
// them round-robin.
func Example_pipelined() {
	ctx := context.Background()
	idx, o, err := testutil.Build([]testutil.Sequence{
		{Name: "chr1", Bases: "ACGTTGCATGCAAGTC"},
	}, 2)
	if err != nil {
		log.Fatal(err)
	}
	r, err := rowchase.Open(ctx, rowchase.FromIndex(idx))
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	chasers := make([]*chase.Chaser, 6)
	for i := range chasers {
		chasers[i] = r.NewChaser()
		if err := chasers[i].Start(o.RowOf(uint32(3*i)), 1); err != nil {
			log.Fatal(err)
		}
	}

	for pending := true; pending; {
		pending = false
		for _, c := range chasers {
			if c.Done() {
				continue
			}
			pending = true
			if err := c.Advance(); err != nil {
				log.Fatal(err)
			}
		}
	}

	offs := make([]int, 0, len(chasers))
	for _, c := range chasers {
		off, _ := c.FlatOffset()
		offs = append(offs, int(off))
	}
	sort.Ints(offs)
	fmt.Println(offs)
	// Output: [0 3 6 9 12 15]
}
