package service

import (
	"sync"
	"time"
)

type cacheEntry[T any] struct {
	value     T
	fetchedAt time.Time
}

// ttlCache is an in-process cache whose entries expire after ttl
type ttlCache[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry[T]
}

func newTTLCache[T any](ttl time.Duration) *ttlCache[T] {
	return &ttlCache[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry[T]),
	}
}

func (c *ttlCache[T]) get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if ok && (c.ttl <= 0 || c.now().Sub(entry.fetchedAt) < c.ttl) {
		return entry.value, true
	}
	var zero T
	return zero, false
}

func (c *ttlCache[T]) set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry[T]{value: value, fetchedAt: c.now()}
}

func (c *ttlCache[T]) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
