package minio

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/hupe1980/rowchase/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateError(t *testing.T) {
	err := translateError(minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}, "k")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	err = translateError(minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}, "k")
	assert.NotErrorIs(t, err, blobstore.ErrNotFound)

	err = translateError(minio.ErrorResponse{Code: "PreconditionFailed", StatusCode: 412}, "k")
	assert.ErrorIs(t, err, blobstore.ErrChanged)

	assert.False(t, isNotFound(errors.New("connection refused")))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-rowchase"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.rcfm", data))
	t.Cleanup(func() { _ = store.Delete(context.Background(), "test.rcfm") })

	blob, err := store.Open(ctx, "test.rcfm")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)

	part := make([]byte, 10)
	n, err = blob.ReadAt(ctx, part, 12)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "world", string(part[:n]))
	require.NoError(t, blob.Close())

	// Replacing the object invalidates handles opened on the old version.
	stale, err := store.Open(ctx, "test.rcfm")
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "test.rcfm", []byte("hello minio again")))
	_, err = stale.ReadAt(ctx, buf, 0)
	assert.ErrorIs(t, err, blobstore.ErrChanged)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.rcfm")

	require.NoError(t, store.Delete(ctx, "test.rcfm"))
	_, err = store.Open(ctx, "test.rcfm")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
