// Package viewcache provides a small bounded cache for rendered season
// views. Derived views are recomputed from the immutable snapshot on every
// request; the cache only saves the recomputation, never correctness, so it
// can be invalidated wholesale whenever the snapshot changes.
package viewcache

import (
	"context"
	"sync"
)

// Default cache configuration.
const defaultMaxSize = 16

// Cache stores values keyed by season year with FIFO eviction.
// The zero value is not usable; construct with New.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[int]V
	order   []int // insertion order, oldest first
	maxSize int
}

// New creates a cache with configuration options.
func New[V any](opts ...Option) *Cache[V] {
	cfg := config{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache[V]{
		entries: make(map[int]V, cfg.maxSize),
		maxSize: cfg.maxSize,
	}
}

// Get returns the cached view for year, if present.
func (c *Cache[V]) Get(_ context.Context, year int) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[year]
	return v, ok
}

// Put stores a rendered view for year, evicting the oldest entry when full.
// Re-putting an existing year replaces the value without growing the cache.
func (c *Cache[V]) Put(_ context.Context, year int, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[year]; exists {
		c.entries[year] = v
		return
	}
	if len(c.order) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[year] = v
	c.order = append(c.order, year)
}

// Invalidate drops every cached view. Called after a snapshot reload.
func (c *Cache[V]) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]V, c.maxSize)
	c.order = c.order[:0]
}

// Len returns the current number of cached views.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
