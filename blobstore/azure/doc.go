// Package azure provides a BlobStore implementation for Azure Blob Storage.
//
// Blobs are opened with a properties call and read with ranged downloads
// conditioned on the ETag seen at open, so a chunked index load fails with
// blobstore.ErrChanged instead of mixing two uploads.
//
// # Usage
//
//	store, err := azure.NewFromConnectionString(connStr, "indexes", "grch38/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := rowchase.Open(ctx, rowchase.Remote(store, "hg38.rcfm"))
package azure
