package storage

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycat/skycat/internal/errors"
)

func TestMounts_Resolve(t *testing.T) {
	dr14, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	dr12, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	m := NewMounts()
	m.Mount("sdss_dr14", dr14)
	m.Mount("sdss_dr12", dr12)

	store, rest, err := m.Resolve("sdss_dr14://sdss/spectro/file.fits")
	require.NoError(t, err)
	assert.Same(t, dr14, store)
	assert.Equal(t, "sdss/spectro/file.fits", rest)

	store, _, err = m.Resolve("sdss_dr12://x")
	require.NoError(t, err)
	assert.Same(t, dr12, store)
}

func TestMounts_NoScheme(t *testing.T) {
	m := NewMounts()
	_, _, err := m.Resolve("sdss/spectro/file.fits")
	assert.Error(t, err)
	assert.Equal(t, errors.CodeObjectNotFound, errors.GetCode(err))
}

func TestMounts_UnknownScheme(t *testing.T) {
	m := NewMounts()
	_, err := m.Fetch(context.Background(), "sdss_dr99://file.fits")
	assert.Error(t, err)
	assert.Equal(t, errors.CodeObjectNotFound, errors.GetCode(err))
	assert.Contains(t, err.Error(), "sdss_dr99")
}

func TestMounts_FetchAndOpen(t *testing.T) {
	local, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, local.Put("a/b.fits", []byte("payload")))

	m := NewMounts()
	m.Mount("sdss_dr14", local)

	data, err := m.Fetch(context.Background(), "sdss_dr14://a/b.fits")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	rc, err := m.Open(context.Background(), "sdss_dr14://a/b.fits")
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}
