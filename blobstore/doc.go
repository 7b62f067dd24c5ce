// Package blobstore provides the storage abstraction index files are loaded
// from.
//
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, blobs are memory-mapped
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible servers
//
// Blobs that also implement Mappable can be decoded without copying; the
// rest are read with ranged ReadAt calls.
package blobstore
