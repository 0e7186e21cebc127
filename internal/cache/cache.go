// Package cache holds derived views (statistics, filtered task lists) between
// mutations. Values are stored as JSON so every level shares one encoding.
package cache

import (
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache miss")
	ErrCacheDown = errors.New("cache unavailable")
)

type Cache interface {
	Set(key string, value any, ttl time.Duration) error
	Get(key string, dest any) error
	Delete(key string) error
	DeletePattern(pattern string) error
	Stats() map[string]any
	Health() error
	Close() error
}
