package cache

import (
	"sync"
	"time"
)

// TTLCache is an in-process cache with per-entry expiry driven by an
// injected clock instead of background timers. Expired entries are dropped
// lazily on read and in bulk by Sweep, which callers schedule themselves.
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]ttlEntry[V]
	ttl     time.Duration
	now     func() time.Time
}

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewTTLCache creates a cache whose entries live for ttl. The now function
// supplies the current time; pass time.Now in production.
func NewTTLCache[K comparable, V any](ttl time.Duration, now func() time.Time) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		entries: make(map[K]ttlEntry[V]),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached value for key and whether it was present and
// unexpired. An expired entry is removed on the spot.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}

	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if current, still := c.entries[key]; still && !c.now().Before(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		var zero V
		return zero, false
	}

	return entry.value, true
}

// Set stores value under key, resetting its expiry.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = ttlEntry[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Delete removes key from the cache.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Sweep removes all expired entries and reports how many were dropped.
func (c *TTLCache[K, V]) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of entries, including any not yet swept.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
