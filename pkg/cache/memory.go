package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmolina/warden/core"
)

// InMemoryCache is a TTL-bounded identity cache keyed by subject ID. The auth
// middleware uses it read-through to avoid a storage lookup per request; the
// short TTL bounds how long a deleted account can still authenticate.
type InMemoryCache struct {
	cache   map[string]*cachedRecord
	mu      sync.RWMutex
	ttl     time.Duration
	maxSize int

	// counters
	hits      int64
	misses    int64
	sets      int64
	deletes   int64
	evictions int64
}

type cachedRecord struct {
	identity *core.Identity
	cachedAt time.Time
}

var _ core.CacheWithStats = (*InMemoryCache)(nil)

// NewInMemoryCache creates a new in-memory cache
func NewInMemoryCache(c core.CacheConfig) *InMemoryCache {
	if c.TTL == 0 {
		c.TTL = time.Minute
	}
	if c.MaxSize == 0 {
		c.MaxSize = 500
	}

	return &InMemoryCache{
		cache:   make(map[string]*cachedRecord),
		ttl:     c.TTL,
		maxSize: c.MaxSize,
	}
}

// Get retrieves an identity from cache
func (c *InMemoryCache) Get(subjectID string) (*core.Identity, error) {
	c.mu.RLock()
	record, exists := c.cache[subjectID]
	c.mu.RUnlock()

	if !exists {
		atomic.AddInt64(&c.misses, 1)
		return nil, core.ErrCacheNotFound
	}

	if time.Since(record.cachedAt) > c.ttl {
		atomic.AddInt64(&c.misses, 1)
		_ = c.Delete(subjectID)
		return nil, core.ErrCacheNotFound
	}

	atomic.AddInt64(&c.hits, 1)
	return record.identity, nil
}

// Set stores an identity in cache
func (c *InMemoryCache) Set(subjectID string, identity *core.Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Simple eviction if full
	if len(c.cache) >= c.maxSize {
		for k := range c.cache {
			delete(c.cache, k)
			atomic.AddInt64(&c.evictions, 1)
			break
		}
	}

	c.cache[subjectID] = &cachedRecord{
		identity: identity,
		cachedAt: time.Now(),
	}

	atomic.AddInt64(&c.sets, 1)
	return nil
}

// Delete removes an identity from cache
func (c *InMemoryCache) Delete(subjectID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, existed := c.cache[subjectID]; existed {
		delete(c.cache, subjectID)
		atomic.AddInt64(&c.deletes, 1)
	}
	return nil
}

// Clear removes all identities from cache
func (c *InMemoryCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*cachedRecord)
	return nil
}

// Len returns the number of cached identities
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Stats returns cache statistics
func (c *InMemoryCache) Stats() core.CacheStats {
	return core.CacheStats{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Sets:      atomic.LoadInt64(&c.sets),
		Deletes:   atomic.LoadInt64(&c.deletes),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      c.Len(),
		TTL:       c.ttl,
	}
}
