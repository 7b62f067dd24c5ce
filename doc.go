// Package rowchase resolves rows of a compressed full-text index over DNA
// references to reference coordinates.
//
// An aligner that searches the index ends up with matrix rows, not text
// positions. rowchase turns those rows back into (reference, offset) pairs
// by walking backwards through the index until it reaches a row whose offset
// was sampled at build time.
//
// # Quick Start
//
//	ctx := context.Background()
//	r, err := rowchase.Open(ctx, rowchase.Local("./hg38.rcfm"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	coord, err := r.Offset(ctx, row, uint32(len(read)))
//	if coord.Resolved {
//	    fmt.Println(r.Index().References()[coord.Ref].Name, coord.Offset)
//	}
//
// Cloud mode:
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("indexes/"))
//	r, _ := rowchase.Open(ctx, rowchase.Remote(store, "hg38.rcfm"),
//	    rowchase.WithReadConcurrency(16),
//	    rowchase.WithReadLimit(200<<20),
//	)
//
// # Latency Hiding
//
// Resolver.Offset walks one row at a time and stalls on every step. Callers
// with many rows to resolve should take a Chaser per row from NewChaser and
// advance them round-robin, so that each chaser's next side is already in
// cache when its turn comes. See package chase.
//
// # Index Files
//
// Index files are written with fmindex.Write. Local files are mapped and
// used in place; remote blobs are fetched with parallel ranged reads.
package rowchase
