package cache

import (
	"context"
	"sync"
	"time"

	"weather-predictor/internal/types"
)

type entry struct {
	coords    types.Coords
	expiresAt time.Time
}

// Memory is a process-local TTL cache. Expired entries are swept on Set at
// most once per TTL, so the map never holds more than one TTL of distinct keys.
type Memory struct {
	mu        sync.RWMutex
	items     map[string]entry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{items: make(map[string]entry), ttl: ttl, now: time.Now}
}

func (c *Memory) Get(_ context.Context, key string) (types.Coords, bool, error) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return types.Coords{}, false, nil
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// re-check, a concurrent Set may have refreshed it
		if cur, ok := c.items[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return types.Coords{}, false, nil
	}
	return e.coords, true, nil
}

func (c *Memory) Set(_ context.Context, key string, coords types.Coords) error {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	if now.Sub(c.lastSweep) >= c.ttl {
		c.sweep(now)
	}
	c.items[key] = entry{coords: coords, expiresAt: now.Add(c.ttl)}
	return nil
}

// sweep drops expired entries; the caller holds the write lock
func (c *Memory) sweep(now time.Time) {
	for key, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, key)
		}
	}
	c.lastSweep = now
}

// Len returns the number of stored entries, expired ones included
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
