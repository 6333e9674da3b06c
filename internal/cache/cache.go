package cache

import (
	"cmp"
	"slices"
	"sync"
)

// Cache maps keys to values created on first use. Once it holds more than
// limit entries, the least recently used quarter is dropped.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*slot[V]
	limit   int
	clock   int64
}

type slot[V any] struct {
	value    V
	lastUsed int64
}

// New creates a cache holding about limit entries. A limit of 0 or less
// never evicts.
func New[K comparable, V any](limit int) *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]*slot[V]), limit: limit}
}

// GetOrCreate returns the value for key, calling create on a miss.
// create runs under the lock, so it runs once per key even with concurrent
// callers.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clock++
	if s, ok := c.entries[key]; ok {
		s.lastUsed = c.clock
		return s.value
	}
	s := &slot[V]{value: create(), lastUsed: c.clock}
	c.entries[key] = s
	if c.limit > 0 && len(c.entries) > c.limit {
		c.shrink()
	}
	return s.value
}

// Len returns the number of cached values.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// shrink drops the least recently used entries down to three quarters of
// the limit. Caller holds c.mu.
func (c *Cache[K, V]) shrink() {
	keep := max(c.limit*3/4, 1)
	keys := make([]K, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b K) int {
		return cmp.Compare(c.entries[a].lastUsed, c.entries[b].lastUsed)
	})
	for _, k := range keys[:len(keys)-keep] {
		delete(c.entries, k)
	}
}
