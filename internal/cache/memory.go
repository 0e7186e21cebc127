package cache

import (
	"encoding/json"
	"fmt"
	"path"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is the in-process cache level. Expiry is checked lazily on
// read; the working set is small (derived views of a few hundred tasks) so
// no janitor goroutine is needed.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	hits    int64
	misses  int64
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Set(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()

	return nil
}

func (c *MemoryCache) Get(key string, dest any) error {
	data, err := c.getRaw(key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached data: %w", err)
	}
	return nil
}

func (c *MemoryCache) getRaw(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || entry.expired(time.Now()) {
		if ok {
			delete(c.entries, key)
		}
		c.misses++
		return nil, ErrCacheMiss
	}

	c.hits++
	return entry.data, nil
}

func (c *MemoryCache) setRaw(key string, data []byte, ttl time.Duration) {
	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

func (c *MemoryCache) Delete(key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) DeletePattern(pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *MemoryCache) Stats() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]any{
		"keys":   len(c.entries),
		"hits":   c.hits,
		"misses": c.misses,
	}
}

func (c *MemoryCache) Health() error { return nil }

func (c *MemoryCache) Close() error { return nil }
