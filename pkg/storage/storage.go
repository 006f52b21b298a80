// Package storage defines the FileStore interface the tone generator writes
// its output through. It abstracts the backend so that a rendered file can
// land on local disk or in an S3-compatible bucket without changing the
// generator.
//
// Writes are all-or-nothing: a Writer either commits the complete object
// at its path or aborts and leaves nothing behind.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// FileStore is a minimal interface for file-oriented storage.
//
// Paths are forward-slash separated and relative to the store root.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Read opens the named file for reading.
	// The caller must close the returned ReadCloser when done.
	// If the file does not exist, an error wrapping os.ErrNotExist is returned.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Create opens a staged writer for the named file. Nothing is visible
	// at path until Commit succeeds; an existing file is replaced then.
	// Parent directories are created automatically.
	Create(ctx context.Context, path string) (Writer, error)

	// Delete removes the named file.
	// If the file does not exist, Delete returns nil (idempotent).
	Delete(ctx context.Context, path string) error

	// Exists reports whether the named file exists.
	Exists(ctx context.Context, path string) (bool, error)

	// Location returns a human-readable address for path, such as an
	// absolute filesystem path or an s3:// URL.
	Location(path string) string
}

// Writer stages the content of one file.
type Writer interface {
	io.Writer

	// Commit publishes the written bytes at the target path.
	Commit() error

	// Abort discards everything written. The cause is passed to the
	// backend where it can use it (for example to fail an upload).
	Abort(cause error) error
}

// sizedCreator is implemented by stores that want the final size up front.
type sizedCreator interface {
	createSized(ctx context.Context, path string, size int64) (Writer, error)
}

// Put writes src to path and commits it. If writing fails the staged
// data is discarded and the write error is returned.
//
// If src has a Len() int64 method and the store can use a size hint (S3),
// the length is announced before the upload starts.
func Put(ctx context.Context, fs FileStore, path string, src io.WriterTo) (int64, error) {
	var w Writer
	var err error
	if sc, ok := fs.(sizedCreator); ok {
		if l, ok := src.(interface{ Len() int64 }); ok {
			w, err = sc.createSized(ctx, path, l.Len())
		}
	}
	if w == nil && err == nil {
		w, err = fs.Create(ctx, path)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: create %s: %w", path, err)
	}
	n, err := src.WriteTo(w)
	if err != nil {
		return n, errors.Join(
			fmt.Errorf("storage: write %s: %w", path, err),
			w.Abort(err),
		)
	}
	if err := w.Commit(); err != nil {
		return n, fmt.Errorf("storage: commit %s: %w", path, err)
	}
	return n, nil
}
