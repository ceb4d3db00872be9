package services

import (
	"context"
	"time"

	"github.com/proconsult/onboard/internal/cachemanager"
)

const currenciesKey = "currencies:all"

// CachedCurrencies reuses the currency list for a while. Failed fetches are
// not cached.
type CachedCurrencies struct {
	cache *cachemanager.ReadThroughCache[[]Currency]
}

// NewCachedCurrencies wraps src. A ttl <= 0 fetches on every call.
func NewCachedCurrencies(src *Currencies, ttl time.Duration) *CachedCurrencies {
	store := cachemanager.NewInMemoryCacheManager[[]Currency]("currencies", ttl, cachemanager.DefaultCleanupInterval)
	return &CachedCurrencies{
		cache: cachemanager.NewReadThroughCache(store, src.GetAllCurrencies, ttl),
	}
}

// GetAllCurrencies returns the cached list or fetches it.
func (c *CachedCurrencies) GetAllCurrencies(ctx context.Context) ([]Currency, error) {
	return c.cache.Get(ctx, currenciesKey)
}

// Invalidate forces the next call to fetch.
func (c *CachedCurrencies) Invalidate(ctx context.Context) {
	c.cache.Invalidate(ctx, currenciesKey)
}
