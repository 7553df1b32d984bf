package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/skycat/skycat/internal/errors"
)

// Mounts resolves scheme-prefixed virtual paths (e.g.
// "sdss_dr14://sdss/spectro/...") to a mounted ObjectStore. Data releases
// and mirrors are mounted under a scheme name, so reconstructor code
// addresses objects by virtual path and never sees mirror topology.
type Mounts struct {
	stores map[string]ObjectStore
}

// NewMounts creates an empty mount table.
func NewMounts() *Mounts {
	return &Mounts{stores: make(map[string]ObjectStore)}
}

// Mount registers a store under a scheme name (without the "://").
func (m *Mounts) Mount(scheme string, store ObjectStore) {
	m.stores[scheme] = store
}

// Resolve splits a virtual path into its mounted store and the
// archive-relative object path.
func (m *Mounts) Resolve(virtualPath string) (ObjectStore, string, error) {
	scheme, rest, ok := strings.Cut(virtualPath, "://")
	if !ok {
		return nil, "", errors.NewStorageError(errors.CodeObjectNotFound, virtualPath,
			fmt.Errorf("not a scheme-prefixed virtual path"))
	}
	store, ok := m.stores[scheme]
	if !ok {
		return nil, "", errors.NewStorageError(errors.CodeObjectNotFound, virtualPath,
			fmt.Errorf("no mount for scheme %q", scheme))
	}
	return store, rest, nil
}

// Fetch resolves the virtual path and fetches the whole object.
func (m *Mounts) Fetch(ctx context.Context, virtualPath string) ([]byte, error) {
	store, objectPath, err := m.Resolve(virtualPath)
	if err != nil {
		return nil, err
	}
	return store.Fetch(ctx, objectPath)
}

// Open resolves the virtual path and opens a streaming handle.
func (m *Mounts) Open(ctx context.Context, virtualPath string) (io.ReadCloser, error) {
	store, objectPath, err := m.Resolve(virtualPath)
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, objectPath)
}
