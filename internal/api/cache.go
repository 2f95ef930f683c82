package api

import (
	"sync"
	"time"
)

// portfolioCache keeps the public home-page payload in memory for a short
// TTL. Refreshes are idempotent reads, so concurrent misses racing to
// refill are harmless.
type portfolioCache struct {
	mu      sync.RWMutex
	payload *PortfolioPayload
	fetched time.Time
	ttl     time.Duration
}

func newPortfolioCache(ttl time.Duration) *portfolioCache {
	return &portfolioCache{ttl: ttl}
}

// Get returns the cached payload if present and not expired.
func (c *portfolioCache) Get() (*PortfolioPayload, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.payload == nil {
		return nil, false
	}
	if time.Since(c.fetched) > c.ttl {
		return nil, false
	}
	return c.payload, true
}

func (c *portfolioCache) Set(payload *PortfolioPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = payload
	c.fetched = time.Now()
}

// Invalidate drops the cached payload; called after admin writes.
func (c *portfolioCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = nil
}
