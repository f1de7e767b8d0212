// Package di provides dependency injection factories for creating application components.
package di

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/felipet/finance-api/internal/feature/market/adapters"
	"github.com/felipet/finance-api/internal/feature/market/usecase"
	"github.com/felipet/finance-api/internal/platform/cache"
	"github.com/felipet/finance-api/internal/platform/config"
)

// cacheNamespace prefixes every Redis key written by the market cache.
const cacheNamespace = "markets"

// NewMarketRepository creates the MarketRepository selected by cfg.MarketSource.
// db is required for the database source. If rdb is not nil, the repository is
// wrapped with a Redis cache.
func NewMarketRepository(cfg config.Config, db *gorm.DB, rdb *redis.Client) (usecase.MarketRepository, error) {
	var repo usecase.MarketRepository
	switch cfg.MarketSource {
	case config.SourceCatalog:
		c, err := adapters.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		repo = adapters.NewCatalogRepository(c)
	default:
		if db == nil {
			return nil, errors.New("database source selected without a database connection")
		}
		repo = adapters.NewMarketRepository(db)
	}

	if rdb != nil {
		return NewMarketCache(rdb, cfg, repo), nil
	}
	return repo, nil
}

// NewMarketCache wraps repo with the Redis cache configured by cfg.
func NewMarketCache(rdb *redis.Client, cfg config.Config, repo usecase.MarketRepository) *cache.CachingMarketRepository {
	return cache.NewCachingMarketRepository(rdb, cfg.CacheTTL, repo, cacheNamespace)
}
