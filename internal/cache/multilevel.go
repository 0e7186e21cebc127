package cache

import (
	"time"
)

// promoteTTL bounds how long an entry promoted from the redis level may live
// in memory without revalidation.
const promoteTTL = 5 * time.Minute

// MultiLevelCache fronts an in-memory level with an optional redis level.
// With a nil redis cache it degrades to memory-only.
type MultiLevelCache struct {
	l1 *MemoryCache
	l2 *RedisCache
}

func NewMultiLevelCache(redisCache *RedisCache) *MultiLevelCache {
	return &MultiLevelCache{
		l1: NewMemoryCache(),
		l2: redisCache,
	}
}

func (c *MultiLevelCache) Set(key string, value any, ttl time.Duration) error {
	if err := c.l1.Set(key, value, ttl); err != nil {
		return err
	}
	if c.l2 != nil {
		return c.l2.Set(key, value, ttl)
	}
	return nil
}

func (c *MultiLevelCache) Get(key string, dest any) error {
	if err := c.l1.Get(key, dest); err == nil {
		return nil
	}

	if c.l2 == nil {
		return ErrCacheMiss
	}

	data, err := c.l2.getRaw(key)
	if err != nil {
		return err
	}

	c.l1.setRaw(key, data, promoteTTL)
	return c.l1.Get(key, dest)
}

func (c *MultiLevelCache) Delete(key string) error {
	c.l1.Delete(key)
	if c.l2 != nil {
		return c.l2.Delete(key)
	}
	return nil
}

func (c *MultiLevelCache) DeletePattern(pattern string) error {
	c.l1.DeletePattern(pattern)
	if c.l2 != nil {
		return c.l2.DeletePattern(pattern)
	}
	return nil
}

func (c *MultiLevelCache) Stats() map[string]any {
	stats := map[string]any{
		"l1": c.l1.Stats(),
	}
	if c.l2 != nil {
		stats["l2"] = c.l2.Stats()
	}
	return stats
}

func (c *MultiLevelCache) Health() error {
	if c.l2 != nil {
		return c.l2.Health()
	}
	return nil
}

func (c *MultiLevelCache) Close() error {
	if c.l2 != nil {
		return c.l2.Close()
	}
	return nil
}
