// Package blobstore abstracts where model snapshots live.
//
// A Store addresses immutable blobs by name. The local and in-memory
// implementations live here; S3 and MinIO backends live in subpackages so
// their SDK dependencies stay out of purely local builds. Throttled wraps
// any Store with a rate limit, which keeps bulk snapshot syncs against
// remote object stores polite.
package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations must return an error satisfying
// errors.Is(err, ErrNotFound). The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for reading and writing named blobs.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Create creates (or replaces) a blob for writing. The blob becomes
	// visible atomically when the returned writer is closed.
	Create(ctx context.Context, name string) (io.WriteCloser, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns all blob names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
