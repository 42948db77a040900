// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Get when no object exists under the key.
// Provider-specific "no such key" responses are translated to this sentinel
// so callers never depend on the storage layer's error types.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage is the interface for storing and retrieving file content.
type ObjectStorage interface {
	// Put streams data to the store under the given key. size must be the
	// exact byte count (pass -1 only if the size is genuinely unknown).
	Put(ctx context.Context, key string, reader io.Reader, size int64) error
	// Get returns a reader over the object's content. The caller must close it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Remove deletes an object identified by key.
	Remove(ctx context.Context, key string) error
}
