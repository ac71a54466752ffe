package loader

import (
	"sync"
	"time"
)

// DefaultTTL is how long a loaded record set is served before re-fetching.
const DefaultTTL = time.Hour

// Clock returns the current time; replaced in tests.
type Clock func() time.Time

type cacheEntry struct {
	res      Result
	storedAt time.Time
}

// cache memoizes successful loads per locator for a fixed TTL.
type cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     Clock
	entries map[string]cacheEntry
}

func newCache(ttl time.Duration, now Clock) *cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &cache{ttl: ttl, now: now, entries: make(map[string]cacheEntry)}
}

// get returns the entry for key unless it is missing or expired. Expired
// entries are dropped.
func (c *cache) get(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return Result{}, false
	}
	return e.res, true
}

func (c *cache) put(key string, res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{res: res, storedAt: c.now()}
}

func (c *cache) delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *cache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
