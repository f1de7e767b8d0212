package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/felipet/finance-api/internal/app/di"
	"github.com/felipet/finance-api/internal/feature/market/adapters"
	"github.com/felipet/finance-api/internal/feature/market/domain/entity"
	"github.com/felipet/finance-api/internal/platform/cache"
	"github.com/felipet/finance-api/internal/platform/config"
	platformdb "github.com/felipet/finance-api/internal/platform/db"
	platformredis "github.com/felipet/finance-api/internal/platform/redis"
)

// marketStore is the database repository plus the Redis cache in front of it.
type marketStore interface {
	Migrate(ctx context.Context) error
	SaveMarket(ctx context.Context, info entity.MarketInfo, companies []entity.CompanyInfo) error
	SetCompanyActive(ctx context.Context, market, ticker string, active bool) error
}

// store bundles what the write commands need. cache is nil when Redis is
// not configured or unreachable.
type store struct {
	repo   marketStore
	cache  *cache.CachingMarketRepository
	logger *logrus.Logger
	close  func()
}

// openStore connects to the database and, when REDIS_HOST is set, to Redis.
func openStore(ctx context.Context, logger *logrus.Logger, migrate bool) (*store, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	db, err := platformdb.Open(cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	var closers []func()
	if sqlDB, err := db.DB(); err == nil {
		closers = append(closers, func() { _ = sqlDB.Close() })
	}
	s := &store{logger: logger}
	s.close = func() {
		for _, c := range closers {
			c()
		}
	}

	repo := adapters.NewMarketRepository(db)
	s.repo = repo
	if migrate || cfg.DB.RunMigrations {
		if err := repo.Migrate(ctx); err != nil {
			s.close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	if cfg.Redis.Enabled() {
		rdb, err := platformredis.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable. Cached entries are left to expire.")
		} else {
			closers = append(closers, func() { _ = rdb.Close() })
			s.cache = di.NewMarketCache(rdb, cfg, repo)
		}
	}
	return s, nil
}

// invalidate drops the cached entries of market. Failures are logged only.
func (s *store) invalidate(ctx context.Context, market string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, market); err != nil {
		s.logger.WithError(err).WithField("market", market).Warn("failed to invalidate cache")
	}
}

func newSeedCmd(opts *options) *cobra.Command {
	var migrate, flushCache bool
	c := &cobra.Command{
		Use:   "seed",
		Short: "Load the catalog into the database",
		Long: `seed stores every market of the catalog in the database configured by the
DB_* variables, replacing the companies already stored for those markets.
When REDIS_HOST is set, the cached entries of each seeded market are removed;
with --flush-cache every cached market entry is removed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			catalog, err := adapters.LoadCatalog(opts.catalogPath)
			if err != nil {
				return err
			}
			s, err := openStore(ctx, opts.logger(cmd), migrate)
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			for _, m := range catalog.Markets {
				if err := s.repo.SaveMarket(ctx, m.MarketInfo, m.Companies); err != nil {
					return fmt.Errorf("seed %s: %w", m.Name, err)
				}
				if !flushCache {
					s.invalidate(ctx, m.Name)
				}
				fmt.Fprintf(out, "%s: %d companies\n", m.Name, len(m.Companies))
			}

			if flushCache && s.cache != nil {
				if err := s.cache.InvalidateAll(ctx); err != nil {
					return fmt.Errorf("flush cache: %w", err)
				}
				fmt.Fprintln(out, "cache flushed")
			}
			return nil
		},
	}
	c.Flags().BoolVar(&migrate, "migrate", true, "create or update the tables first")
	c.Flags().BoolVar(&flushCache, "flush-cache", false, "remove every cached market entry, not only the seeded ones")
	return c
}
