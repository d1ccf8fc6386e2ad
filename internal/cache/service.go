package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
)

// GenericCacheService stores JSON-encoded query results under prefixed keys.
// A nil service, or one built with Enabled=false, reports ErrCacheDisabled on
// every call so callers can treat caching as optional.
type GenericCacheService struct {
	cache  Cache
	config *CacheConfig

	mu   sync.Mutex
	gens map[string]uint64
}

// NewGenericCacheService creates a new generic cache service
func NewGenericCacheService(cache Cache, config *CacheConfig) *GenericCacheService {
	if config == nil {
		config = DefaultCacheConfig()
	}
	return &GenericCacheService{cache: cache, config: config, gens: map[string]uint64{}}
}

// Generation returns the write generation of scope. Readers take it before
// loading data and fold it into their cache key; Advance after a committed
// write makes every key built from an older generation unreachable.
func (gcs *GenericCacheService) Generation(scope string) uint64 {
	if gcs == nil {
		return 0
	}
	gcs.mu.Lock()
	defer gcs.mu.Unlock()
	return gcs.gens[scope]
}

// Advance bumps the write generation of scope and returns the new value.
func (gcs *GenericCacheService) Advance(scope string) uint64 {
	if gcs == nil {
		return 0
	}
	gcs.mu.Lock()
	defer gcs.mu.Unlock()
	gcs.gens[scope]++
	return gcs.gens[scope]
}

// IsEnabled returns whether caching is enabled
func (gcs *GenericCacheService) IsEnabled() bool {
	return gcs != nil && gcs.config.Enabled && gcs.cache != nil
}

// GetCached retrieves and unmarshals cached data into target.
func (gcs *GenericCacheService) GetCached(ctx context.Context, key string, target interface{}) error {
	if !gcs.IsEnabled() {
		return ErrCacheDisabled
	}

	fullKey := gcs.buildKey(key)
	data, err := gcs.cache.Get(ctx, fullKey)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.ErrorWithContext(ctx, "Cache get error for key %s: %v", fullKey, err)
		}
		return err
	}

	if err := json.Unmarshal(data, target); err != nil {
		log.ErrorWithContext(ctx, "Cache data unmarshal error for key %s: %v", fullKey, err)
		return fmt.Errorf("%w: %v", ErrDeserializationFailed, err)
	}
	return nil
}

// CacheData marshals and stores data. A zero ttl uses the configured default.
func (gcs *GenericCacheService) CacheData(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	if !gcs.IsEnabled() {
		return ErrCacheDisabled
	}
	if ttl <= 0 {
		ttl = gcs.config.TTL
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}

	fullKey := gcs.buildKey(key)
	if err := gcs.cache.Set(ctx, fullKey, payload, ttl); err != nil {
		log.ErrorWithContext(ctx, "Cache set error for key %s: %v", fullKey, err)
		return err
	}
	return nil
}

// InvalidatePattern removes all cache keys matching the given pattern
func (gcs *GenericCacheService) InvalidatePattern(ctx context.Context, pattern string) error {
	if !gcs.IsEnabled() {
		return ErrCacheDisabled
	}

	fullPattern := gcs.buildKey(pattern)
	if err := gcs.cache.DeletePattern(ctx, fullPattern); err != nil {
		log.ErrorWithContext(ctx, "Cache pattern invalidation error for pattern %s: %v", fullPattern, err)
		return err
	}
	return nil
}

// GenerateHashKey creates a deterministic key "prefix:hash" from params.
// Parameter order does not matter.
func (gcs *GenericCacheService) GenerateHashKey(prefix string, params map[string]interface{}) string {
	h := sha256.New()
	h.Write([]byte(prefix + ":"))

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var valueStr string
		switch val := params[k].(type) {
		case string:
			valueStr = val
		case nil:
			valueStr = "nil"
		default:
			if b, err := json.Marshal(val); err == nil {
				valueStr = string(b)
			} else {
				valueStr = fmt.Sprintf("%v", val)
			}
		}
		fmt.Fprintf(h, "%s=%s;", k, valueStr)
	}

	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(h.Sum(nil))[:16])
}

// GetStats returns backend statistics.
func (gcs *GenericCacheService) GetStats() CacheStats {
	if !gcs.IsEnabled() {
		return CacheStats{}
	}
	return gcs.cache.Stats()
}

// Close closes the backend.
func (gcs *GenericCacheService) Close() error {
	if gcs == nil || gcs.cache == nil {
		return nil
	}
	return gcs.cache.Close()
}

func (gcs *GenericCacheService) buildKey(key string) string {
	if gcs.config.Prefix == "" {
		return key
	}
	prefix := gcs.config.Prefix
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return prefix + key
}
