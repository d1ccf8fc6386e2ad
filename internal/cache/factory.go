package cache

import (
	"context"
	"fmt"
)

// NewCache builds the backend named by config.Backend.
func NewCache(ctx context.Context, config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Backend {
	case CacheTypeMemory, "":
		return NewMemoryCache(config), nil
	case CacheTypeRedis:
		return NewRedisCache(ctx, config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidCacheType, config.Backend)
	}
}
