package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type cacheItem struct {
	value      []byte
	expiration time.Time
}

// MemoryCache implements Cache in process. A janitor goroutine drops expired
// entries every CleanupInterval until Close is called.
type MemoryCache struct {
	mu        sync.RWMutex
	items     map[string]cacheItem
	maxKeys   int
	hits      int64
	misses    int64
	evictions int64

	now       func() time.Time
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(config *CacheConfig) *MemoryCache {
	if config == nil {
		config = DefaultCacheConfig()
	}

	c := &MemoryCache{
		items:   make(map[string]cacheItem),
		maxKeys: config.MaxKeys,
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	interval := config.CleanupInterval
	if interval <= 0 {
		interval = time.Minute
	}
	go c.janitor(interval)

	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || c.now().After(item.expiration) {
		atomic.AddInt64(&c.misses, 1)
		return nil, ErrKeyNotFound
	}

	atomic.AddInt64(&c.hits, 1)
	out := make([]byte, len(item.value))
	copy(out, item.value)
	return out, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	v := make([]byte, len(value))
	copy(v, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists {
		c.evictIfNeeded()
	}
	c.items[key] = cacheItem{value: v, expiration: c.now().Add(ttl)}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *MemoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if matchPattern(key, pattern) {
			delete(c.items, key)
		}
	}
	return nil
}

// Close stops the janitor and waits for it to exit. Safe to call twice.
func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stop)
		<-c.done
	})
	return nil
}

func (c *MemoryCache) Stats() CacheStats {
	c.mu.RLock()
	keys := int64(len(c.items))
	c.mu.RUnlock()

	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	return CacheStats{
		Hits:      hits,
		Misses:    misses,
		HitRatio:  hitRatio(hits, misses),
		Keys:      keys,
		Evictions: atomic.LoadInt64(&c.evictions),
	}
}

func (c *MemoryCache) janitor(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryCache) cleanupExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
		}
	}
}

// evictIfNeeded makes room for one more key. Expired entries go first, then the
// entry closest to expiry. Caller holds the write lock.
func (c *MemoryCache) evictIfNeeded() {
	if c.maxKeys <= 0 || len(c.items) < c.maxKeys {
		return
	}

	now := c.now()
	var victim string
	var soonest time.Time
	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
			atomic.AddInt64(&c.evictions, 1)
			continue
		}
		if victim == "" || item.expiration.Before(soonest) {
			victim, soonest = key, item.expiration
		}
	}

	if len(c.items) >= c.maxKeys && victim != "" {
		delete(c.items, victim)
		atomic.AddInt64(&c.evictions, 1)
	}
}

// matchPattern implements glob matching with '*' wildcards only.
func matchPattern(text, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return text == pattern
	}

	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(text, parts[0]) {
		return false
	}
	rest := text[len(parts[0]):]

	last := parts[len(parts)-1]
	for _, part := range parts[1 : len(parts)-1] {
		i := strings.Index(rest, part)
		if i < 0 {
			return false
		}
		rest = rest[i+len(part):]
	}
	return strings.HasSuffix(rest, last)
}
