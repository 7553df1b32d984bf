// Package observability provides fetch statistics and Prometheus metrics
// for the archive retrieval path.
package observability

import (
	"sort"
	"sync"
	"time"
)

// FetchStats tracks per-object fetch and cache-hit counts so operators can
// see which archive objects dominate traffic.
type FetchStats struct {
	mu      sync.RWMutex
	objects map[string]*ObjectStats
}

// ObjectStats holds retrieval statistics for one archive object.
type ObjectStats struct {
	VirtualPath string
	Fetches     int64
	CacheHits   int64
	Bytes       int64
	LastFetch   time.Time
}

// NewFetchStats creates an empty statistics tracker.
func NewFetchStats() *FetchStats {
	return &FetchStats{objects: make(map[string]*ObjectStats)}
}

// RecordFetch records one archive fetch of the given size.
// This method is O(1) and thread-safe.
func (s *FetchStats) RecordFetch(virtualPath string, bytes int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.lookupLocked(virtualPath)
	st.Fetches++
	st.Bytes += bytes
	st.LastFetch = time.Now()
}

// RecordHit records one cache hit for the given object.
func (s *FetchStats) RecordHit(virtualPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lookupLocked(virtualPath).CacheHits++
}

// Top returns the n most-fetched objects, most frequent first.
func (s *FetchStats) Top(n int) []ObjectStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ObjectStats, 0, len(s.objects))
	for _, st := range s.objects {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fetches > out[j].Fetches })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Lookup returns the stats for one object, if any were recorded.
func (s *FetchStats) Lookup(virtualPath string) (ObjectStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.objects[virtualPath]
	if !ok {
		return ObjectStats{}, false
	}
	return *st, true
}

func (s *FetchStats) lookupLocked(virtualPath string) *ObjectStats {
	st, ok := s.objects[virtualPath]
	if !ok {
		st = &ObjectStats{VirtualPath: virtualPath}
		s.objects[virtualPath] = st
	}
	return st
}
