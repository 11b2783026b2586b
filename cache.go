package worksite

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/worksite/content"
)

// BundleCache is an in-memory cache of the resolved content bundle with TTL.
type BundleCache struct {
	mu      sync.RWMutex
	bundle  content.Bundle
	loaded  bool
	fetched time.Time
	ttl     time.Duration
	source  content.Source
}

// NewBundleCache creates a BundleCache backed by the given source.
func NewBundleCache(src content.Source, ttl time.Duration) *BundleCache {
	return &BundleCache{source: src, ttl: ttl}
}

func (c *BundleCache) valid() bool {
	return c.loaded && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *BundleCache) Invalidate() {
	c.mu.Lock()
	c.bundle = content.Bundle{}
	c.loaded = false
	c.mu.Unlock()
}

// Get returns the cached bundle after ensuring it is fresh. It tries a read
// lock first and only takes the write lock when a reload is needed.
func (c *BundleCache) Get(ctx context.Context) (content.Bundle, error) {
	c.mu.RLock()
	if c.valid() {
		b := c.bundle
		c.mu.RUnlock()
		return b, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.bundle, nil
	}
	b, err := c.source.Fetch(ctx)
	if err != nil {
		return content.Bundle{}, err
	}
	c.bundle = b
	c.loaded = true
	c.fetched = time.Now()
	return b, nil
}
