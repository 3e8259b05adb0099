package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rafaelleal24/rocketshoes/internal/core/port"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Cache is the process-local CachePort used when Redis is not configured.
// Values are stored JSON encoded so callers never share memory with the cache.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewCache[T any]() port.CachePort[T] {
	return &Cache[T]{entries: map[string]entry{}, now: time.Now}
}

func (c *Cache[T]) newEntry(value *T, ttl time.Duration) (entry, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return entry{}, err
	}
	e := entry{data: data}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	return e, nil
}

func (c *Cache[T]) Get(_ context.Context, key string) (*T, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && e.expired(c.now()) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return nil, nil
	}
	var value T
	if err := json.Unmarshal(e.data, &value); err != nil {
		return nil, err
	}
	return &value, nil
}

func (c *Cache[T]) Set(_ context.Context, key string, value *T, ttl time.Duration) error {
	e, err := c.newEntry(value, ttl)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
	return nil
}

func (c *Cache[T]) SetNX(_ context.Context, key string, value *T, ttl time.Duration) (bool, error) {
	e, err := c.newEntry(value, ttl)
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok && !existing.expired(c.now()) {
		return false, nil
	}
	c.entries[key] = e
	return true, nil
}

func (c *Cache[T]) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
