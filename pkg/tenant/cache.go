package tenant

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Cache stores tenants loaded by a Directory.
type Cache interface {
	// Get retrieves a tenant by key. Expired entries are reported as missing.
	Get(ctx context.Context, key string) (*Tenant, bool)

	// Set stores a tenant for ttl.
	Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) error

	// Delete removes a tenant.
	Delete(ctx context.Context, key string) error
}

// DefaultCacheSize is the default capacity of the in-memory cache.
const DefaultCacheSize = 1000

type memoryEntry struct {
	key       string
	tenant    *Tenant
	expiresAt time.Time
}

// MemoryCache is a size-bounded LRU cache with per-entry expiry.
// Expired entries are dropped lazily on access or eviction.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List
	now      func() time.Time
}

// NewMemoryCache returns an in-memory cache holding at most capacity tenants.
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &MemoryCache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		now:      time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*Tenant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*memoryEntry)
	if c.now().After(entry.expiresAt) {
		c.remove(elem)
		return nil, false
	}
	c.order.MoveToFront(elem)
	return entry.tenant, true
}

func (c *MemoryCache) Set(_ context.Context, key string, t *Tenant, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)
	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.tenant = t
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return nil
	}

	c.items[key] = c.order.PushFront(&memoryEntry{key: key, tenant: t, expiresAt: expiresAt})
	for c.order.Len() > c.capacity {
		c.remove(c.order.Back())
	}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Must be called with lock held.
func (c *MemoryCache) remove(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*memoryEntry).key)
}

// NoOpCache disables caching.
type NoOpCache struct{}

func (NoOpCache) Get(context.Context, string) (*Tenant, bool)                { return nil, false }
func (NoOpCache) Set(context.Context, string, *Tenant, time.Duration) error { return nil }
func (NoOpCache) Delete(context.Context, string) error                      { return nil }
