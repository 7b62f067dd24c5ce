// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("indexes/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	r, err := rowchase.Open(ctx, rowchase.Remote(store, "hg38.rcfm"))
//
// # Features
//
//   - Range reads, so an index can be fetched in parallel chunks
//   - Multipart uploads for large indexes
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
