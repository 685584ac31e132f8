package market

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/digbiz/insight-engine/internal/model"
)

// TrendsCache is a concurrent-safe TTL cache for computed trend bundles,
// keyed by industry and location. Entries past the TTL are treated as absent.
type TrendsCache struct {
	mu      sync.Mutex
	entries map[string]trendsEntry
	ttl     time.Duration
	now     func() time.Time
	hits    atomic.Int64
	misses  atomic.Int64
}

type trendsEntry struct {
	bundle    model.TrendsBundle
	createdAt time.Time
}

// CacheStats contains cache performance counters.
type CacheStats struct {
	Entries int     `json:"entries"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// NewTrendsCache creates a TrendsCache with the given TTL. A nil clock
// defaults to time.Now; tests inject a deterministic clock.
func NewTrendsCache(ttl time.Duration, clock func() time.Time) *TrendsCache {
	if clock == nil {
		clock = time.Now
	}
	return &TrendsCache{
		entries: make(map[string]trendsEntry),
		ttl:     ttl,
		now:     clock,
	}
}

// cacheKey builds the cache key for an industry/location pair.
func cacheKey(industry, location string) string {
	return strings.ToLower(industry) + "|" + strings.ToLower(location)
}

// Get retrieves a cached bundle. Expired entries count as misses and are
// removed so the next Put overwrites them.
func (c *TrendsCache) Get(industry, location string) (model.TrendsBundle, bool) {
	key := cacheKey(industry, location)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return model.TrendsBundle{}, false
	}

	if c.now().Sub(entry.createdAt) >= c.ttl {
		delete(c.entries, key)
		c.misses.Add(1)
		return model.TrendsBundle{}, false
	}

	c.hits.Add(1)
	return entry.bundle, true
}

// Put stores a bundle, overwriting any prior entry for the key.
func (c *TrendsCache) Put(industry, location string, bundle model.TrendsBundle) {
	key := cacheKey(industry, location)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = trendsEntry{bundle: bundle, createdAt: c.now()}
}

// Stats returns cache performance counters.
func (c *TrendsCache) Stats() CacheStats {
	c.mu.Lock()
	entries := len(c.entries)
	c.mu.Unlock()

	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Entries: entries,
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate,
	}
}
