// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/felipet/finance-api/internal/feature/market/domain/entity"
	"github.com/felipet/finance-api/internal/feature/market/usecase"
)

// fallbackTTL applies when the TTL cannot be derived from a market close time.
const fallbackTTL = 5 * time.Minute

// CachingMarketRepository decorates a MarketRepository with Redis caching.
// Entries are stored as JSON under <namespace>:markets, <namespace>:market:<name>
// and <namespace>:companies:<name>.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	now       func() time.Time
}

var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates a MarketRepository with Redis caching.
// If ttl is 0, entries of a market expire at its next close time. If namespace is
// empty, it uses "markets". A nil rdb disables caching.
func NewCachingMarketRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if ttl < 0 {
		ttl = 0
	}
	if namespace == "" {
		namespace = "markets"
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		now:       time.Now,
	}
}

// ListMarkets returns every market, checking the cache first.
func (c *CachingMarketRepository) ListMarkets(ctx context.Context) ([]entity.MarketInfo, error) {
	if c.rdb == nil {
		return c.inner.ListMarkets(ctx)
	}
	return cached(ctx, c, c.namespace+":markets",
		func() ([]entity.MarketInfo, error) { return c.inner.ListMarkets(ctx) },
		func([]entity.MarketInfo) time.Duration { return c.ttlFor("") },
	)
}

// FindMarket returns the named market, checking the cache first. Errors of the
// inner repository, including domain.ErrMarketNotFound, are never cached.
func (c *CachingMarketRepository) FindMarket(ctx context.Context, name string) (*entity.MarketInfo, error) {
	if c.rdb == nil {
		return c.inner.FindMarket(ctx, name)
	}
	info, err := cached(ctx, c, c.marketKey(name),
		func() (entity.MarketInfo, error) {
			m, err := c.inner.FindMarket(ctx, name)
			if err != nil {
				return entity.MarketInfo{}, err
			}
			return *m, nil
		},
		func(m entity.MarketInfo) time.Duration { return c.ttlFor(m.CloseTime) },
	)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// ListCompanies returns the companies of market, checking the cache first.
func (c *CachingMarketRepository) ListCompanies(ctx context.Context, market string) ([]entity.CompanyInfo, error) {
	if c.rdb == nil {
		return c.inner.ListCompanies(ctx, market)
	}
	return cached(ctx, c, c.companiesKey(market),
		func() ([]entity.CompanyInfo, error) { return c.inner.ListCompanies(ctx, market) },
		func([]entity.CompanyInfo) time.Duration {
			if c.ttl > 0 {
				return c.ttl
			}
			info, err := c.FindMarket(ctx, market)
			if err != nil {
				return fallbackTTL
			}
			return c.ttlFor(info.CloseTime)
		},
	)
}

// Invalidate removes the cached entries of the named market and the market list.
func (c *CachingMarketRepository) Invalidate(ctx context.Context, name string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.namespace+":markets", c.marketKey(name), c.companiesKey(name)).Err()
}

// InvalidateAll removes every entry of the namespace.
func (c *CachingMarketRepository) InvalidateAll(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.namespace+":*")
}

// cached returns the JSON value stored under key, or calls load and stores its
// result for ttl(result). Cache failures are ignored.
func cached[T any](ctx context.Context, c *CachingMarketRepository, key string, load func() (T, error), ttl func(T) time.Duration) (T, error) {
	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the inner repository
	out, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, ttl(out)).Err()
	}
	return out, nil
}

// ttlFor returns the configured TTL, or the time left until closeTime.
func (c *CachingMarketRepository) ttlFor(closeTime string) time.Duration {
	if c.ttl > 0 {
		return c.ttl
	}
	if closeTime == "" {
		return fallbackTTL
	}
	d, err := TimeUntilNextClock(closeTime, c.now())
	if err != nil {
		return fallbackTTL
	}
	return d
}

func (c *CachingMarketRepository) marketKey(name string) string {
	return fmt.Sprintf("%s:market:%s", c.namespace, safe(name))
}

func (c *CachingMarketRepository) companiesKey(name string) string {
	return fmt.Sprintf("%s:companies:%s", c.namespace, safe(name))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingMarketRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe percent-encodes s for use in a key. Distinct names give distinct keys,
// and glob characters never reach a SCAN pattern unescaped.
func safe(s string) string {
	return url.PathEscape(s)
}
