package observability

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchStats_RecordAndLookup(t *testing.T) {
	s := NewFetchStats()

	s.RecordFetch("sdss_dr14://a.fits", 1000)
	s.RecordFetch("sdss_dr14://a.fits", 500)
	s.RecordHit("sdss_dr14://a.fits")

	st, ok := s.Lookup("sdss_dr14://a.fits")
	require.True(t, ok)
	assert.Equal(t, int64(2), st.Fetches)
	assert.Equal(t, int64(1), st.CacheHits)
	assert.Equal(t, int64(1500), st.Bytes)
	assert.False(t, st.LastFetch.IsZero())

	_, ok = s.Lookup("sdss_dr14://never.fits")
	assert.False(t, ok)
}

func TestFetchStats_Top(t *testing.T) {
	s := NewFetchStats()

	for i := 0; i < 3; i++ {
		s.RecordFetch("hot.fits", 10)
	}
	s.RecordFetch("warm.fits", 10)
	s.RecordFetch("warm.fits", 10)
	s.RecordFetch("cold.fits", 10)

	top := s.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, "hot.fits", top[0].VirtualPath)
	assert.Equal(t, "warm.fits", top[1].VirtualPath)

	all := s.Top(0)
	assert.Len(t, all, 3)
}

func TestFetchStats_Concurrent(t *testing.T) {
	s := NewFetchStats()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.RecordFetch("shared.fits", 1)
				s.RecordHit("shared.fits")
			}
		}()
	}
	wg.Wait()

	st, ok := s.Lookup("shared.fits")
	require.True(t, ok)
	assert.Equal(t, int64(800), st.Fetches)
	assert.Equal(t, int64(800), st.CacheHits)
	assert.Equal(t, int64(800), st.Bytes)
}
