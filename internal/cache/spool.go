package cache

import (
	"container/list"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/spaolacci/murmur3"
)

// Spool is an LRU cache of raw fetched archive files on local disk. It
// tracks files by virtual path and evicts least-recently-used entries when
// the total spooled size exceeds the configured maximum. Entries are
// verified by content checksum on every hit, so a file trimmed or
// corrupted outside the process is refetched rather than decoded.
type Spool struct {
	mu       sync.Mutex
	dir      string
	maxBytes int64
	curBytes int64

	// items maps virtualPath → list element (whose value is *spoolEntry)
	items map[string]*list.Element
	order *list.List // front = most recently used
}

type spoolEntry struct {
	virtualPath string
	localPath   string
	sizeBytes   int64
	checksum    uint64
}

// NewSpool creates a disk spool under dir with a total byte budget.
// maxBytes <= 0 selects the 4 GB default.
func NewSpool(dir string, maxBytes int64) (*Spool, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if maxBytes <= 0 {
		maxBytes = 4 * 1024 * 1024 * 1024 // 4 GB
	}
	return &Spool{
		dir:      dir,
		maxBytes: maxBytes,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}, nil
}

// Get returns the spooled bytes for a virtual path, or nil on a miss.
// On hit, the entry is promoted to most-recently-used.
func (s *Spool) Get(virtualPath string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[virtualPath]
	if !ok {
		return nil
	}
	entry := elem.Value.(*spoolEntry)

	data, err := os.ReadFile(entry.localPath)
	if err != nil || murmur3.Sum64(data) != entry.checksum {
		// File gone or corrupted outside the process — evict entry
		s.removeLocked(elem)
		return nil
	}

	s.order.MoveToFront(elem)
	return data
}

// Put spools fetched bytes for a virtual path. If adding the entry
// exceeds the byte budget, LRU entries are evicted.
func (s *Spool) Put(virtualPath string, data []byte) error {
	sum := murmur3.Sum64(data)
	localPath := filepath.Join(s.dir, s.fileName(virtualPath))
	if err := os.WriteFile(localPath, data, 0644); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[virtualPath]; ok {
		old := elem.Value.(*spoolEntry)
		s.curBytes -= old.sizeBytes
		old.sizeBytes = int64(len(data))
		old.checksum = sum
		s.curBytes += old.sizeBytes
		s.order.MoveToFront(elem)
	} else {
		entry := &spoolEntry{
			virtualPath: virtualPath,
			localPath:   localPath,
			sizeBytes:   int64(len(data)),
			checksum:    sum,
		}
		elem := s.order.PushFront(entry)
		s.items[virtualPath] = elem
		s.curBytes += entry.sizeBytes
	}

	for s.curBytes > s.maxBytes && s.order.Len() > 1 {
		s.removeLocked(s.order.Back())
	}
	return nil
}

// Size returns the current total spooled size in bytes.
func (s *Spool) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.curBytes
}

// Len returns the number of spooled files.
func (s *Spool) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// removeLocked removes an entry and deletes its file. Caller must hold s.mu.
func (s *Spool) removeLocked(elem *list.Element) {
	if elem == nil {
		return
	}
	entry := elem.Value.(*spoolEntry)
	s.order.Remove(elem)
	delete(s.items, entry.virtualPath)
	s.curBytes -= entry.sizeBytes

	// Best-effort delete of the spooled file
	os.Remove(entry.localPath)
}

// fileName flattens a virtual path into a collision-resistant spool file
// name using the 128-bit murmur3 of the path.
func (s *Spool) fileName(virtualPath string) string {
	h1, h2 := murmur3.Sum128([]byte(virtualPath))
	buf := make([]byte, 16)
	for i := 0; i < 8; i++ {
		buf[i] = byte(h1 >> (56 - 8*i))
		buf[8+i] = byte(h2 >> (56 - 8*i))
	}
	return hex.EncodeToString(buf) + ".spool"
}
