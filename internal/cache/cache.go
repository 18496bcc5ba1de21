// Package cache provides the bounded, concurrency-safe LRU caches used
// throughout the archive: the per-archive refs/keys/store-item caches (§3)
// and the process-wide per-strength collation-key caches (§4.6).
//
// It is a thin wrapper over hashicorp/golang-lru/v2, adding an explicit
// mutex so callers never need to reason about whether the wrapped
// implementation happens to be internally synchronized.
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a bounded, mutex-guarded LRU map from K to V.
type Cache[K comparable, V any] struct {
	mu  sync.Mutex
	lru *lru.Cache[K, V]
}

// New creates a Cache with the given capacity. capacity must be positive.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	c, err := lru.New[K, V](capacity)
	if err != nil {
		// Only possible cause is a non-positive capacity, which is always a
		// programming error in this codebase's fixed set of cache sizes.
		panic(err)
	}

	return &Cache[K, V]{lru: c}
}

// Get returns the cached value for key, if present, marking it
// most-recently-used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Get(key)
}

// Add inserts or updates the value for key, evicting the least-recently-used
// entry if the cache is at capacity.
func (c *Cache[K, V]) Add(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Add(key, value)
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}

// Purge evicts all entries.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Purge()
}
