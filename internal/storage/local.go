package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/skycat/skycat/internal/errors"
)

// LocalStore implements ObjectStore over a local directory tree.
// This serves local SAS mirrors and is the backend used in tests.
type LocalStore struct {
	basePath string
}

// NewLocalStore creates a local filesystem store rooted at basePath.
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &LocalStore{basePath: basePath}, nil
}

// Fetch reads the whole object from disk.
func (l *LocalStore) Fetch(ctx context.Context, objectPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.fullPath(objectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewStorageError(errors.CodeObjectNotFound, objectPath, err)
		}
		return nil, errors.NewStorageError(errors.CodeRemoteUnreachable, objectPath, err)
	}
	return data, nil
}

// Open returns a streaming handle to the object.
func (l *LocalStore) Open(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.fullPath(objectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewStorageError(errors.CodeObjectNotFound, objectPath, err)
		}
		return nil, errors.NewStorageError(errors.CodeRemoteUnreachable, objectPath, err)
	}
	return f, nil
}

// Exists checks whether the object file exists.
func (l *LocalStore) Exists(ctx context.Context, objectPath string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(l.fullPath(objectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Put writes an object into the store. Used by tests and mirror tooling;
// the library itself never writes to an archive.
func (l *LocalStore) Put(objectPath string, data []byte) error {
	full := l.fullPath(objectPath)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0644)
}

// fullPath returns the full filesystem path for an object.
func (l *LocalStore) fullPath(objectPath string) string {
	return filepath.Join(l.basePath, filepath.FromSlash(objectPath))
}
