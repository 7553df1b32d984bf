// Package storage provides read-only object retrieval for survey data
// archives. Implementations include the SAS HTTP mirror, S3-hosted
// mirrors, and the local filesystem for testing.
package storage

import (
	"context"
	"io"
)

// ObjectStore abstracts retrieval from a survey data archive.
// All operations are blocking; cancellation and deadlines arrive through
// the context. Failures carry the skycat storage error codes
// (OBJECT_NOT_FOUND, REMOTE_UNREACHABLE, REMOTE_TIMEOUT) with the
// collaborator's original error preserved as the cause.
type ObjectStore interface {
	// Fetch retrieves the whole object as a byte slice.
	// objectPath is the archive-relative path of the object.
	Fetch(ctx context.Context, objectPath string) ([]byte, error)

	// Open retrieves the object as a streaming handle.
	// The caller owns the returned ReadCloser.
	Open(ctx context.Context, objectPath string) (io.ReadCloser, error)

	// Exists checks whether the object is present in the archive.
	Exists(ctx context.Context, objectPath string) (bool, error)
}
