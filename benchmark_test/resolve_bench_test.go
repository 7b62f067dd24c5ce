package benchmark_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/rowchase"
	"github.com/hupe1980/rowchase/chase"
	"github.com/hupe1980/rowchase/fmindex"
	"github.com/hupe1980/rowchase/testutil"
)

func benchIndex(b *testing.B, n int, offRate uint32) *fmindex.Index {
	b.Helper()
	rng := testutil.NewRNG(4711)
	idx, _ := testutil.MustBuild(b, []testutil.Sequence{
		{Name: "chr1", Bases: rng.Bases(n / 2)},
		{Name: "chr2", Bases: rng.GappedBases(n/2, 8, 50)},
	}, offRate)
	return idx
}

// BenchmarkResolve_OneShot resolves rows one at a time, stalling on every
// backward step.
func BenchmarkResolve_OneShot(b *testing.B) {
	ctx := context.Background()
	for _, offRate := range []uint32{3, 5} {
		b.Run(fmt.Sprintf("offrate=%d", offRate), func(b *testing.B) {
			idx := benchIndex(b, 60000, offRate)
			r, err := rowchase.Open(ctx, rowchase.FromIndex(idx))
			if err != nil {
				b.Fatal(err)
			}
			defer r.Close()

			rows := idx.Params().Len
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := r.FlatOffset(ctx, uint32(i*7919)%rows, 1); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkResolve_Pipelined resolves the same rows with a batch of chasers
// advanced round-robin.
func BenchmarkResolve_Pipelined(b *testing.B) {
	for _, width := range []int{1, 8, 32} {
		b.Run(fmt.Sprintf("width=%d", width), func(b *testing.B) {
			idx := benchIndex(b, 60000, 5)
			rows := idx.Params().Len
			chasers := make([]*chase.Chaser, width)
			for i := range chasers {
				chasers[i] = chase.New(idx)
			}

			b.ReportAllocs()
			b.ResetTimer()
			next := 0
			for done := 0; done < b.N; {
				for _, c := range chasers {
					if err := c.Start(uint32(next*7919)%rows, 1); err != nil {
						b.Fatal(err)
					}
					next++
				}
				for pending := true; pending; {
					pending = false
					for _, c := range chasers {
						if c.Done() {
							continue
						}
						pending = true
						if err := c.Advance(); err != nil {
							b.Fatal(err)
						}
					}
				}
				done += width
			}
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	idx := benchIndex(b, 60000, 4)
	for _, comp := range []fmindex.Compression{fmindex.CompressionNone, fmindex.CompressionLZ4, fmindex.CompressionZSTD} {
		b.Run(comp.String(), func(b *testing.B) {
			var buf writeBuffer
			if _, err := fmindex.Write(&buf, idx, fmindex.WithCompression(comp)); err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(buf)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := fmindex.Decode(buf); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

type writeBuffer []byte

func (w *writeBuffer) Write(p []byte) (int, error) {
	*w = append(*w, p...)
	return len(p), nil
}
