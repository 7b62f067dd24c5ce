package azure

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/hupe1980/rowchase/blobstore"
)

var _ blobstore.BlobStore = (*Store)(nil)

// Store implements blobstore.BlobStore on top of one Azure container.
type Store struct {
	client *container.Client
	prefix string
}

// NewStore wraps an existing container client.
// rootPrefix is prepended to all blob names (e.g. "indexes/").
func NewStore(client *container.Client, rootPrefix string) *Store {
	return &Store{
		client: client,
		prefix: rootPrefix,
	}
}

// NewFromConnectionString creates a Store for containerName using a storage
// account connection string.
func NewFromConnectionString(connStr, containerName, rootPrefix string) (*Store, error) {
	client, err := container.NewClientFromConnectionString(connStr, containerName, nil)
	if err != nil {
		return nil, fmt.Errorf("azure: create container client: %w", err)
	}
	return NewStore(client, rootPrefix), nil
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open fetches the blob properties and returns a handle pinned to its ETag.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)
	bc := s.client.NewBlobClient(key)

	props, err := bc.GetProperties(ctx, nil)
	if err != nil {
		return nil, translateError(err, key)
	}

	var size int64
	if props.ContentLength != nil {
		size = *props.ContentLength
	}
	return &azureBlob{
		client: bc,
		key:    key,
		size:   size,
		etag:   props.ETag,
	}, nil
}

// Put uploads data as a block blob, replacing any previous content.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	key := s.key(name)
	if _, err := s.client.NewBlockBlobClient(key).UploadBuffer(ctx, data, &blockblob.UploadBufferOptions{}); err != nil {
		return fmt.Errorf("azure: put %s: %w", key, err)
	}
	return nil
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	key := s.key(name)
	_, err := s.client.NewBlobClient(key).Delete(ctx, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("azure: delete %s: %w", key, err)
	}
	return nil
}

// List returns the sorted names of all blobs with the given prefix,
// relative to the store prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	full := strings.TrimPrefix(s.key(prefix), "/")
	if prefix == "" || strings.HasSuffix(prefix, "/") {
		full = strings.TrimSuffix(full, "/") + "/"
	}
	if full == "/" {
		full = ""
	}

	var names []string
	pager := s.client.NewListBlobsFlatPager(&container.ListBlobsFlatOptions{Prefix: &full})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, translateError(err, full)
		}
		if page.Segment == nil {
			continue
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			name := strings.TrimPrefix(*item.Name, strings.TrimPrefix(s.prefix, "/"))
			name = strings.TrimPrefix(name, "/")
			if name != "" {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// translateError maps missing blobs and containers onto blobstore.ErrNotFound
// and failed If-Match conditions onto blobstore.ErrChanged.
func translateError(err error, key string) error {
	switch {
	case bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound):
		return fmt.Errorf("%w: %s", blobstore.ErrNotFound, key)
	case bloberror.HasCode(err, bloberror.ConditionNotMet):
		return fmt.Errorf("%w: %s", blobstore.ErrChanged, key)
	}
	return fmt.Errorf("azure: %s: %w", key, err)
}

type azureBlob struct {
	client *blob.Client
	key    string
	size   int64
	etag   *azcore.ETag
}

func (b *azureBlob) Size() int64 {
	return b.size
}

// ReadAt issues one ranged download for [off, off+len(p)).
func (b *azureBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off < 0 || off >= b.size {
		return 0, io.EOF
	}

	want := min(int64(len(p)), b.size-off)
	opts := &blob.DownloadStreamOptions{
		Range: blob.HTTPRange{Offset: off, Count: want},
	}
	if b.etag != nil {
		opts.AccessConditions = &blob.AccessConditions{
			ModifiedAccessConditions: &blob.ModifiedAccessConditions{IfMatch: b.etag},
		}
	}

	resp, err := b.client.DownloadStream(ctx, opts)
	if err != nil {
		return 0, translateError(err, b.key)
	}
	defer func() { _ = resp.Body.Close() }()

	n, err := io.ReadFull(resp.Body, p[:want])
	if err != nil {
		return n, err
	}
	if int(want) < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *azureBlob) Close() error {
	return nil
}
