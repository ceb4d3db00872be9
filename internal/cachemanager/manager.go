// Package cachemanager provides typed in-memory caches with expiry and a
// read-through wrapper for slow lookups.
package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/proconsult/onboard/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// CacheManager stores values of one type by string key.
type CacheManager[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	Flush(ctx context.Context)
}

// InMemoryCacheManager is a CacheManager backed by go-cache.
type InMemoryCacheManager[V any] struct {
	useCase string
	cache   *gocache.Cache
}

// NewInMemoryCacheManager creates a cache. useCase only appears in logs.
func NewInMemoryCacheManager[V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[V] {
	return &InMemoryCacheManager[V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the unexpired value stored under key.
func (c *InMemoryCacheManager[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	value, found := c.cache.Get(key)
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "Wrong type in cache", "cache", c.useCase, "key", key)
		return zero, false
	}
	log.Debug(log.CatCache, "Cache hit", "cache", c.useCase, "key", key)
	return v, true
}

// Set stores value for ttl; 0 uses the default expiration.
func (c *InMemoryCacheManager[V]) Set(_ context.Context, key string, value V, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
}

// Delete removes keys.
func (c *InMemoryCacheManager[V]) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		c.cache.Delete(key)
	}
}

// Flush removes everything.
func (c *InMemoryCacheManager[V]) Flush(_ context.Context) {
	c.cache.Flush()
}

// ReadThroughCache serves a loader's result from the cache while it is
// fresh. Errors are returned as is and never cached.
type ReadThroughCache[V any] struct {
	cache CacheManager[V]
	fn    func(ctx context.Context) (V, error)
	ttl   time.Duration
	// skip bypasses the cache entirely.
	skip bool
}

// NewReadThroughCache wraps fn. A ttl <= 0 disables caching.
func NewReadThroughCache[V any](cache CacheManager[V], fn func(ctx context.Context) (V, error), ttl time.Duration) *ReadThroughCache[V] {
	return &ReadThroughCache[V]{cache: cache, fn: fn, ttl: ttl, skip: ttl <= 0}
}

// Get returns the cached value for key or loads and caches it.
func (r *ReadThroughCache[V]) Get(ctx context.Context, key string) (V, error) {
	if r.skip {
		return r.fn(ctx)
	}
	if v, ok := r.cache.Get(ctx, key); ok {
		return v, nil
	}
	v, err := r.fn(ctx)
	if err != nil {
		return v, err
	}
	r.cache.Set(ctx, key, v, r.ttl)
	return v, nil
}

// Invalidate drops key so the next Get reloads.
func (r *ReadThroughCache[V]) Invalidate(ctx context.Context, key string) {
	r.cache.Delete(ctx, key)
}
