// Package blobstore provides read access to dataset files in local or
// object storage.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with mmap
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 with range reads and concurrent downloads
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	}
//
// Stores that can fetch a whole object faster than one sequential read
// also implement Downloader; Download picks it up automatically.
package blobstore
