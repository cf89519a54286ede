// Package cache memoizes search and match results for a fixed TTL.
// Entries live in process memory only; nothing here survives a restart.
package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// DefaultTTL is how long a cached result stays visible after being written.
const DefaultTTL = 15 * time.Minute

type entry struct {
	payload  any
	storedAt time.Time
}

// Cache is a namespaced TTL cache. Expired entries are evicted lazily by
// the read that discovers them; there is no background sweeper.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: map[string]entry{},
		now:     time.Now,
	}
}

// Key builds a deterministic cache key from a namespace and arbitrary
// params. Params are round-tripped through an untyped JSON value so that
// object keys come out sorted: structurally equal params always produce
// the same key regardless of field or insertion order.
func Key(namespace string, params any) string {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return namespace + ":" + string(raw)
	}
	canonical, err := json.Marshal(generic)
	if err != nil {
		return namespace + ":" + string(raw)
	}
	return namespace + ":" + string(canonical)
}

// Get returns the payload stored for (namespace, params), or false if none
// exists or the entry has outlived the TTL. A stale entry is deleted on
// the spot.
func (c *Cache) Get(namespace string, params any) (any, bool) {
	key := Key(namespace, params)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.payload, true
}

// Set stores payload under (namespace, params), resetting its TTL.
func (c *Cache) Set(namespace string, params any, payload any) {
	key := Key(namespace, params)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{payload: payload, storedAt: c.now()}
}

// Clear drops every entry across all namespaces.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]entry{}
}

// Len reports the number of live entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
