package store

import (
	"errors"
	"sync"
	"time"

	"github.com/alurubalakarthikeya/Zephra/internal/dashboard"
)

var (
	// ErrNotFound is returned when no cached dashboard is available for a key.
	ErrNotFound = errors.New("no cached dashboard for key")
)

type entry struct {
	resp     *dashboard.DashboardResponse
	epoch    int
	storedAt time.Time
}

// MemoryCache is a concurrency-safe in-memory dashboard cache. Entries
// are scoped to the seed epoch they were built under and expire after
// maxAge; a day rollover invalidates the whole cache at once.
type MemoryCache struct {
	mu sync.RWMutex

	data map[string]entry

	maxAge time.Duration // 0 = no age limit
}

// NewMemoryCache creates an empty cache with an optional age limit.
func NewMemoryCache(maxAge time.Duration) *MemoryCache {
	return &MemoryCache{
		data:   make(map[string]entry),
		maxAge: maxAge,
	}
}

// Get returns the cached dashboard for key if it was stored under the
// same seed epoch and has not aged out.
func (c *MemoryCache) Get(key string, epoch int) (*dashboard.DashboardResponse, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok || e.epoch != epoch {
		return nil, ErrNotFound
	}
	if c.maxAge > 0 && time.Since(e.storedAt) > c.maxAge {
		return nil, ErrNotFound
	}
	return e.resp, nil
}

// Put stores a dashboard under the given key and seed epoch.
func (c *MemoryCache) Put(key string, epoch int, resp *dashboard.DashboardResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = entry{
		resp:     resp,
		epoch:    epoch,
		storedAt: time.Now(),
	}
}

// InvalidateAll drops every cached dashboard. Called when the daily
// seed rolls over.
func (c *MemoryCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[string]entry)
}

// Len reports the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
