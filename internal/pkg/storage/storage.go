package storage

import (
	"context"
	"io"
)

// Storage defines the minimal interface for object storage backends.
// Intentionally simple: put an object, delete it, get its public URL.
type Storage interface {
	// Put stores an object at the given key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get retrieves an object by its key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object by its key. Deleting a key that does not
	// exist is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is present at the key.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL for an object given its key.
	GetURL(key string) string
}

// FileInfo describes a stored object
type FileInfo struct {
	Key         string
	Size        int64
	ContentType string
	URL         string
}
