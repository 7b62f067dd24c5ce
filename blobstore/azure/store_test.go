package azure

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/hupe1980/rowchase/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known Azurite development account.
const azuriteConnStr = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;" +
	"AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;" +
	"BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func TestTranslateError(t *testing.T) {
	err := translateError(&azcore.ResponseError{ErrorCode: string(bloberror.BlobNotFound), StatusCode: 404}, "k")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	err = translateError(&azcore.ResponseError{ErrorCode: string(bloberror.ContainerNotFound), StatusCode: 404}, "k")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	err = translateError(&azcore.ResponseError{ErrorCode: string(bloberror.ConditionNotMet), StatusCode: 412}, "k")
	assert.ErrorIs(t, err, blobstore.ErrChanged)

	err = translateError(errors.New("connection reset"), "k")
	assert.NotErrorIs(t, err, blobstore.ErrNotFound)
	assert.NotErrorIs(t, err, blobstore.ErrChanged)
}

// TestAzureStore_Integration requires a running Azurite instance.
// Skip if not available.
func TestAzureStore_Integration(t *testing.T) {
	store, err := NewFromConnectionString(azuriteConnStr, "test-rowchase", "test-prefix/")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	probe, probeCancel := context.WithTimeout(ctx, 3*time.Second)
	_, err = store.client.Create(probe, nil)
	probeCancel()
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		t.Skipf("Azurite not available: %v", err)
	}

	data := []byte("hello azure world")
	require.NoError(t, store.Put(ctx, "test.rcfm", data))
	t.Cleanup(func() { _ = store.Delete(context.Background(), "test.rcfm") })

	blob, err := store.Open(ctx, "test.rcfm")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, data, buf[:n])

	part := make([]byte, 10)
	n, err = blob.ReadAt(ctx, part, 12)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "world", string(part[:n]))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.rcfm")

	require.NoError(t, store.Put(ctx, "test.rcfm", []byte("hello azure again")))
	_, err = blob.ReadAt(ctx, buf, 0)
	assert.ErrorIs(t, err, blobstore.ErrChanged)
	require.NoError(t, blob.Close())

	require.NoError(t, store.Delete(ctx, "test.rcfm"))
	_, err = store.Open(ctx, "test.rcfm")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
