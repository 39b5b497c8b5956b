package driver

import (
	"sync"
)

// MemCache is an in-process cache of unit payloads by Digest, consulted
// before the disk cache. Useful when one process lowers the same bundle
// several times (tests, watch loops).
type MemCache struct {
	mu    sync.RWMutex
	byKey map[Digest]*UnitPayload
}

// NewMemCache creates a MemCache with the given capacity hint.
func NewMemCache(capHint int) *MemCache {
	return &MemCache{byKey: make(map[Digest]*UnitPayload, capHint)}
}

// Get returns the payload stored under key.
func (c *MemCache) Get(key Digest) (*UnitPayload, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	p, ok := c.byKey[key]
	c.mu.RUnlock()
	return p, ok
}

// Put stores p under key; payloads are treated as immutable afterwards.
func (c *MemCache) Put(key Digest, p *UnitPayload) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.byKey[key] = p
	c.mu.Unlock()
}

// Len is the number of cached units.
func (c *MemCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byKey)
}
