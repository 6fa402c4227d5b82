package adapter

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	m "distill.dev/pkg/distill/internal/model"
)

const (
	// DefaultContentCacheEntries bounds the number of cached file bodies.
	DefaultContentCacheEntries = 512
	// DefaultContentCacheBytes bounds the total size of cached file bodies.
	DefaultContentCacheBytes int64 = 64 << 20
)

type cachedContent struct {
	modTime time.Time
	size    int64
	data    []byte
}

// CachedSourceFS decorates a SourceFSAdapter with an LRU cache for ReadFile.
// Entries are invalidated when the file's size or modification time changes,
// so the map and cut phases of a single `distill all` run read each file once.
// The cache holds at most maxBytes of file content; a file larger than the
// whole budget is read through without being cached.
type CachedSourceFS struct {
	SourceFSAdapter

	cache    *lru.Cache[m.Path, cachedContent]
	maxBytes int64
	bytes    atomic.Int64
	mu       sync.Mutex
}

// NewCachedSourceFS wraps inner with a cache holding up to entries file bodies
// and maxBytes of content. Non-positive limits fall back to the defaults.
func NewCachedSourceFS(inner SourceFSAdapter, entries int, maxBytes int64) (*CachedSourceFS, error) {
	if entries <= 0 {
		entries = DefaultContentCacheEntries
	}
	if maxBytes <= 0 {
		maxBytes = DefaultContentCacheBytes
	}

	c := &CachedSourceFS{SourceFSAdapter: inner, maxBytes: maxBytes}

	cache, err := lru.NewWithEvict[m.Path, cachedContent](entries, func(_ m.Path, entry cachedContent) {
		c.bytes.Add(-int64(len(entry.data)))
	})
	if err != nil {
		return nil, err
	}
	c.cache = cache

	return c, nil
}

// ReadFile returns the cached body when the file is unchanged since it was cached.
func (c *CachedSourceFS) ReadFile(path m.Path) ([]byte, error) {
	info, err := c.FileInfo(path)
	if err != nil {
		return nil, err
	}

	if entry, ok := c.cache.Get(path); ok && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
		slog.Debug("content cache hit", "path", path)
		return entry.data, nil
	}

	data, err := c.SourceFSAdapter.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c.store(path, cachedContent{modTime: info.ModTime(), size: info.Size(), data: data})

	return data, nil
}

func (c *CachedSourceFS) store(path m.Path, entry cachedContent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Add replaces an existing value without running the eviction callback.
	c.cache.Remove(path)

	size := int64(len(entry.data))
	if size > c.maxBytes {
		slog.Debug("content cache skip", "path", path, "bytes", size)
		return
	}

	c.cache.Add(path, entry)
	c.bytes.Add(size)

	for c.bytes.Load() > c.maxBytes {
		if _, _, ok := c.cache.RemoveOldest(); !ok {
			break
		}
	}
}

// Len returns the number of cached entries.
func (c *CachedSourceFS) Len() int {
	return c.cache.Len()
}

// Bytes returns the total size of the cached file bodies.
func (c *CachedSourceFS) Bytes() int64 {
	return c.bytes.Load()
}
