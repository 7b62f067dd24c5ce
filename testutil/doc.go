// Package testutil provides testing utilities for rowchase.
//
// This package is intended for use in tests and benchmarks only. Its index
// builder sorts suffixes naively and is only suitable for small texts.
//
// # Random References
//
//	rng := testutil.NewRNG(seed)
//	seq := rng.Bases(1000)              // uniform ACGT
//	gappy := rng.GappedBases(1000, 3, 20) // with N stretches
//
// # Building an Index with an Oracle
//
//	idx, oracle := testutil.MustBuild(t, []testutil.Sequence{
//	    {Name: "chr1", Bases: seq},
//	}, 3)
//
//	steps, off := oracle.Expected(row) // forward-simulated chase result
package testutil
