package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies `errors.Is(err, ErrNotFound)`.
var ErrNotFound = os.ErrNotExist

// BlobStore gives read access to immutable data objects such as dataset files.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	// ReadAt reads len(p) bytes starting at off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// ReadRange returns a reader for length bytes starting at off.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Downloader is implemented by stores that copy a whole object faster than
// a sequential read, e.g. with concurrent ranged requests.
type Downloader interface {
	Download(ctx context.Context, name string, w io.WriterAt) (int64, error)
}

// Download copies the named blob into w. It uses the store's Downloader when
// available and falls back to one sequential read.
func Download(ctx context.Context, store BlobStore, name string, w io.WriterAt) (int64, error) {
	if d, ok := store.(Downloader); ok {
		return d.Download(ctx, name, w)
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return 0, err
	}
	defer blob.Close()

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	return io.Copy(io.NewOffsetWriter(w, 0), rc)
}
