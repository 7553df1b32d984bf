// Package cache provides the memoization caches used by the frame
// reconstructor: an in-memory memo table for decoded frames (unbounded or
// LRU) and an on-disk spool for raw fetched files.
package cache

import (
	"container/list"
	"sync"

	"github.com/skycat/skycat/pkg/types"
)

// FrameCache memoizes decoded frames by resolved archive path. The policy
// is injected into the reconstructor so hosts (and tests) choose lifetime
// and bounds; the default is Unbounded, matching the process-lifetime memo
// table of the reference pipeline.
type FrameCache interface {
	// Get returns the cached frame for the key, if present.
	Get(key string) (*types.FrameImage, bool)

	// Put records a decoded frame under the key.
	Put(key string, img *types.FrameImage)

	// Len returns the number of cached frames.
	Len() int
}

// Unbounded is a memo table with no eviction: every distinct key fetched
// during the process lifetime is retained until exit. Callers must assume
// memory growth proportional to distinct keys.
type Unbounded struct {
	mu    sync.Mutex
	items map[string]*types.FrameImage
}

// NewUnbounded creates an empty unbounded memo table.
func NewUnbounded() *Unbounded {
	return &Unbounded{items: make(map[string]*types.FrameImage)}
}

// Get returns the cached frame for the key, if present.
func (c *Unbounded) Get(key string) (*types.FrameImage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	img, ok := c.items[key]
	return img, ok
}

// Put records a decoded frame under the key.
func (c *Unbounded) Put(key string, img *types.FrameImage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = img
}

// Len returns the number of cached frames.
func (c *Unbounded) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// LRU is a bounded memo table that evicts the least-recently-used frame
// once maxEntries is exceeded.
type LRU struct {
	mu         sync.Mutex
	maxEntries int

	// items maps key → list element (whose value is *lruEntry)
	items map[string]*list.Element
	order *list.List // front = most recently used
}

type lruEntry struct {
	key string
	img *types.FrameImage
}

// NewLRU creates an LRU memo table holding at most maxEntries frames.
func NewLRU(maxEntries int) *LRU {
	if maxEntries <= 0 {
		maxEntries = 64
	}
	return &LRU{
		maxEntries: maxEntries,
		items:      make(map[string]*list.Element),
		order:      list.New(),
	}
}

// Get returns the cached frame for the key, promoting it to
// most-recently-used on a hit.
func (c *LRU) Get(key string) (*types.FrameImage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*lruEntry).img, true
}

// Put records a decoded frame, evicting LRU entries past the bound.
func (c *LRU) Put(key string, img *types.FrameImage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*lruEntry).img = img
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&lruEntry{key: key, img: img})
	c.items[key] = elem

	for len(c.items) > c.maxEntries {
		back := c.order.Back()
		if back == nil {
			break
		}
		c.order.Remove(back)
		delete(c.items, back.Value.(*lruEntry).key)
	}
}

// Len returns the number of cached frames.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
