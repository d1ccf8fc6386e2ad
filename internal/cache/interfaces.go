package cache

import (
	"context"
	"errors"
	"time"
)

// Cache is a byte-oriented key/value store with TTL and prefix invalidation.
type Cache interface {
	// Get returns ErrKeyNotFound for missing or expired keys.
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// DeletePattern removes every key matching a glob with '*' wildcards.
	DeletePattern(ctx context.Context, pattern string) error

	Close() error

	Stats() CacheStats
}

// CacheType names a cache backend.
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// IsValid checks if the cache type is valid
func (ct CacheType) IsValid() bool {
	switch ct {
	case CacheTypeMemory, CacheTypeRedis:
		return true
	default:
		return false
	}
}

// CacheConfig holds configuration for cache instances
type CacheConfig struct {
	Enabled         bool          `json:"enabled" yaml:"enabled"`
	TTL             time.Duration `json:"ttl" yaml:"ttl"`
	Prefix          string        `json:"prefix" yaml:"prefix"`
	Backend         CacheType     `json:"backend" yaml:"backend"`
	MaxKeys         int           `json:"max_keys" yaml:"max_keys"`
	CleanupInterval time.Duration `json:"cleanup_interval" yaml:"cleanup_interval"`
	Redis           RedisConfig   `json:"redis" yaml:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address      string   `json:"address" yaml:"address"`
	Password     string   `json:"password" yaml:"password"`
	Database     int      `json:"database" yaml:"database"`
	PoolSize     int      `json:"pool_size" yaml:"pool_size"`
	MinIdleConns int      `json:"min_idle_conns" yaml:"min_idle_conns"`
	ClusterAddrs []string `json:"cluster_addrs" yaml:"cluster_addrs"`
}

// CacheStats provides cache performance statistics
type CacheStats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	HitRatio  float64 `json:"hit_ratio"`
	Keys      int64   `json:"keys"`
	Evictions int64   `json:"evictions"`
}

// Common cache errors
var (
	ErrKeyNotFound           = errors.New("key not found")
	ErrCacheUnavailable      = errors.New("cache unavailable")
	ErrInvalidCacheType      = errors.New("invalid cache type")
	ErrCacheDisabled         = errors.New("cache disabled")
	ErrSerializationFailed   = errors.New("serialization failed")
	ErrDeserializationFailed = errors.New("deserialization failed")
)

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Enabled:         true,
		TTL:             30 * time.Second,
		Prefix:          "b2b:",
		Backend:         CacheTypeMemory,
		MaxKeys:         10000,
		CleanupInterval: time.Minute,
		Redis: RedisConfig{
			Address:      "localhost:6379",
			PoolSize:     10,
			MinIdleConns: 2,
		},
	}
}

func hitRatio(hits, misses int64) float64 {
	if total := hits + misses; total > 0 {
		return float64(hits) / float64(total)
	}
	return 0
}
