package rowchase

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"github.com/hupe1980/rowchase/blobstore"
	"github.com/hupe1980/rowchase/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedBlob struct {
	data     []byte
	failAt   int64
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (b *scriptedBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	n := b.inFlight.Add(1)
	defer b.inFlight.Add(-1)
	for {
		seen := b.maxSeen.Load()
		if n <= seen || b.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	if b.failAt >= 0 && off <= b.failAt && b.failAt < off+int64(len(p)) {
		return 0, errors.New("injected failure")
	}
	if off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n2 := copy(p, b.data[off:])
	if n2 < len(p) {
		return n2, io.EOF
	}
	return n2, nil
}

func (b *scriptedBlob) Size() int64  { return int64(len(b.data)) }
func (b *scriptedBlob) Close() error { return nil }

func TestReadChunks(t *testing.T) {
	src := make([]byte, 10_000)
	for i := range src {
		src[i] = byte(i * 7)
	}
	blob := &scriptedBlob{data: src, failAt: -1}
	rc := resource.NewController(resource.Config{MaxConcurrentReads: 3})

	dst := make([]byte, len(src))
	require.NoError(t, readChunks(context.Background(), blob, dst, rc, 512))
	assert.Equal(t, src, dst)
	assert.LessOrEqual(t, blob.maxSeen.Load(), int32(3))
}

func TestReadChunks_Failure(t *testing.T) {
	blob := &scriptedBlob{data: make([]byte, 4096), failAt: 2100}
	rc := resource.NewController(resource.Config{MaxConcurrentReads: 2})

	err := readChunks(context.Background(), blob, make([]byte, 4096), rc, 1000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read [2000, 3000)")
}

func TestReadChunks_ShortBlob(t *testing.T) {
	blob := &scriptedBlob{data: make([]byte, 100), failAt: -1}
	err := readChunks(context.Background(), blob, make([]byte, 150), nil, 64)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestLoadBlob_ReleasesMemoryOnFailure(t *testing.T) {
	blob := &scriptedBlob{data: []byte("not an index, but long enough to pass the size check"), failAt: -1}
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})

	_, err := loadBlob(context.Background(), blob, rc, 16)
	require.Error(t, err)
	assert.Zero(t, rc.MemoryUsage())
}

func TestLoadBlob_ReplacedDuringLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "hg.rcfm", make([]byte, 256)))

	blob, err := store.Open(ctx, "hg.rcfm")
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "hg.rcfm", make([]byte, 256)))

	_, err = loadBlob(ctx, blob, nil, 64)
	assert.ErrorIs(t, translateError(err), ErrChanged)
}
