package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/hupe1980/paircorr/blobstore"
	"github.com/hupe1980/paircorr/internal/fs"
)

// Source opens the raw bytes of a dataset. Every Open starts from the
// beginning.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Size(ctx context.Context) (int64, error)
}

type fileSource struct {
	fsys fs.FileSystem
	path string
}

// FileSource reads a local file.
func FileSource(path string) Source {
	return &fileSource{fsys: fs.Default, path: path}
}

func (s *fileSource) Open(context.Context) (io.ReadCloser, error) {
	return s.fsys.OpenFile(s.path, os.O_RDONLY, 0)
}

func (s *fileSource) Size(context.Context) (int64, error) {
	fi, err := s.fsys.Stat(s.path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

type blobSource struct {
	store blobstore.BlobStore
	name  string
}

// BlobSource reads the named blob of store. Each Open streams the blob
// again; use Stage for datasets that are re-read many times.
func BlobSource(store blobstore.BlobStore, name string) Source {
	return &blobSource{store: store, name: name}
}

func (s *blobSource) Open(ctx context.Context) (io.ReadCloser, error) {
	blob, err := s.store.Open(ctx, s.name)
	if err != nil {
		return nil, err
	}

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		_ = blob.Close()
		return nil, err
	}
	return &blobReader{ReadCloser: rc, blob: blob}, nil
}

func (s *blobSource) Size(ctx context.Context) (int64, error) {
	blob, err := s.store.Open(ctx, s.name)
	if err != nil {
		return 0, err
	}
	defer blob.Close()
	return blob.Size(), nil
}

type blobReader struct {
	io.ReadCloser
	blob blobstore.Blob
}

func (r *blobReader) Close() error {
	return errors.Join(r.ReadCloser.Close(), r.blob.Close())
}

// Stage copies the named blob into dir and returns the local path. Stores
// implementing blobstore.Downloader fetch the object with parallel ranged
// requests.
func Stage(ctx context.Context, store blobstore.BlobStore, name, dir string) (string, error) {
	return stage(ctx, fs.Default, store, name, dir)
}

func stage(ctx context.Context, fsys fs.FileSystem, store blobstore.BlobStore, name, dir string) (string, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(dir, filepath.Base(name))
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.part", filepath.Base(name), uuid.NewString()))

	f, err := fsys.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}

	fail := func(err error) (string, error) {
		_ = f.Close()
		_ = fsys.Remove(tmp)
		return "", fmt.Errorf("dataset: stage %s: %w", name, err)
	}

	if _, err := blobstore.Download(ctx, store, name, f); err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		_ = fsys.Remove(tmp)
		return "", fmt.Errorf("dataset: stage %s: %w", name, err)
	}
	if err := fsys.Rename(tmp, dst); err != nil {
		_ = fsys.Remove(tmp)
		return "", err
	}

	return dst, nil
}
