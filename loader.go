package rowchase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/rowchase/blobstore"
	"github.com/hupe1980/rowchase/fmindex"
	"github.com/hupe1980/rowchase/internal/resource"
	"golang.org/x/sync/errgroup"
)

// loaded is an index together with whatever keeps its bytes alive.
type loaded struct {
	idx      *fmindex.Index
	blob     blobstore.Blob
	size     int64
	held     int64
	zeroCopy bool
}

// loadBlob decodes an index from blob. Mappable blobs are decoded in place;
// everything else is copied into memory with parallel ranged reads.
func loadBlob(ctx context.Context, blob blobstore.Blob, rc *resource.Controller, chunk int) (*loaded, error) {
	size := blob.Size()

	if m, ok := blob.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		idx, err := fmindex.Decode(data)
		if err != nil {
			return nil, err
		}
		return &loaded{idx: idx, blob: blob, size: size, zeroCopy: true}, nil
	}

	if err := rc.AcquireMemory(size); err != nil {
		return nil, fmt.Errorf("%d bytes: %w", size, err)
	}
	data := make([]byte, size)
	if err := readChunks(ctx, blob, data, rc, chunk); err != nil {
		rc.ReleaseMemory(size)
		return nil, err
	}
	idx, err := fmindex.Decode(data)
	if err != nil {
		rc.ReleaseMemory(size)
		return nil, err
	}
	return &loaded{idx: idx, blob: blob, size: size, held: size}, nil
}

// readChunks fills data from blob in chunk-sized ranged reads, with at most
// rc.MaxConcurrentReads in flight.
func readChunks(ctx context.Context, blob blobstore.Blob, data []byte, rc *resource.Controller, chunk int) error {
	g, gctx := errgroup.WithContext(ctx)
	for off := 0; off < len(data); off += chunk {
		if err := rc.AcquireRead(gctx); err != nil {
			break
		}
		end := min(off+chunk, len(data))
		p := data[off:end]
		g.Go(func() error {
			defer rc.ReleaseRead()
			if err := rc.AcquireIO(gctx, len(p)); err != nil {
				return err
			}
			n, err := blob.ReadAt(gctx, p, int64(off))
			if errors.Is(err, io.EOF) {
				err = nil
			}
			if err == nil && n < len(p) {
				err = io.ErrUnexpectedEOF
			}
			if err != nil {
				return fmt.Errorf("read [%d, %d): %w", off, end, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
