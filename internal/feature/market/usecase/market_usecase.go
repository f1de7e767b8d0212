// Package usecase materialises markets from a repository into immutable
// in-memory snapshots that satisfy the finance contract.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	finance "github.com/felipet/finance-api"
	"github.com/felipet/finance-api/internal/feature/market/domain/entity"
)

// MarketRepository abstracts where market data is stored.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	ListMarkets(ctx context.Context) ([]entity.MarketInfo, error)
	FindMarket(ctx context.Context, name string) (*entity.MarketInfo, error)
	ListCompanies(ctx context.Context, market string) ([]entity.CompanyInfo, error)
}

const (
	// maxConcurrentLoads bounds LoadAll and Refresh.
	maxConcurrentLoads = 4
	// loadTimeout bounds one shared market load.
	loadTimeout = 30 * time.Second
)

// MarketUsecase keeps one snapshot per market name. Snapshots are built on first
// use and replaced on Reload; a snapshot already handed out stays valid.
type MarketUsecase struct {
	repo   MarketRepository
	logger logrus.FieldLogger
	opts   []entity.Option

	mu        sync.RWMutex
	snapshots map[string]*entity.Market
	group     singleflight.Group
}

// NewMarketUsecase creates a MarketUsecase reading from repo. opts are applied to
// every snapshot.
func NewMarketUsecase(repo MarketRepository, logger logrus.FieldLogger, opts ...entity.Option) *MarketUsecase {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &MarketUsecase{
		repo:      repo,
		logger:    logger.WithField("component", "market_usecase"),
		opts:      opts,
		snapshots: make(map[string]*entity.Market),
	}
}

// ListMarkets returns the names of every market known to the repository.
func (u *MarketUsecase) ListMarkets(ctx context.Context) ([]string, error) {
	infos, err := u.repo.ListMarkets(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names, nil
}

// Market returns the snapshot of the named market, loading it if needed.
func (u *MarketUsecase) Market(ctx context.Context, name string) (finance.Market, error) {
	u.mu.RLock()
	m, ok := u.snapshots[name]
	u.mu.RUnlock()
	if ok {
		return m, nil
	}
	return u.snapshot(ctx, name)
}

// Reload rebuilds the snapshot of the named market from the repository.
func (u *MarketUsecase) Reload(ctx context.Context, name string) (finance.Market, error) {
	return u.snapshot(ctx, name)
}

// snapshot wraps load so that a failed load yields a nil interface.
func (u *MarketUsecase) snapshot(ctx context.Context, name string) (finance.Market, error) {
	m, err := u.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// LoadAll loads every market of the repository.
func (u *MarketUsecase) LoadAll(ctx context.Context) error {
	names, err := u.ListMarkets(ctx)
	if err != nil {
		return fmt.Errorf("list markets: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for _, name := range names {
		g.Go(func() error {
			_, err := u.load(gctx, name)
			return err
		})
	}
	return g.Wait()
}

// Refresh rebuilds the snapshot of every market listed by the repository and
// drops the snapshots of markets no longer listed. A market that fails to
// reload keeps its previous snapshot; the failures are joined in the error.
func (u *MarketUsecase) Refresh(ctx context.Context) error {
	names, err := u.ListMarkets(ctx)
	if err != nil {
		return fmt.Errorf("list markets: %w", err)
	}

	listed := make(map[string]struct{}, len(names))
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(maxConcurrentLoads)
	for _, name := range names {
		listed[name] = struct{}{}
		g.Go(func() error {
			if _, err := u.load(ctx, name); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	u.mu.Lock()
	for name := range u.snapshots {
		if _, ok := listed[name]; !ok {
			delete(u.snapshots, name)
			u.logger.WithField("market", name).Info("market dropped")
		}
	}
	u.mu.Unlock()
	return errors.Join(errs...)
}

// Run calls Refresh every interval until ctx is done. It returns at once when
// interval is not positive.
func (u *MarketUsecase) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := u.Refresh(ctx); err != nil {
				u.logger.WithError(err).Warn("market refresh incomplete")
			}
		}
	}
}

// Loaded returns the number of markets currently held in memory.
func (u *MarketUsecase) Loaded() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.snapshots)
}

func (u *MarketUsecase) load(ctx context.Context, name string) (*entity.Market, error) {
	v, err, _ := u.group.Do(name, func() (interface{}, error) {
		// Callers collapsed onto this load must not fail because the first one left.
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		m, err := u.build(lctx, name)
		if err != nil {
			return nil, err
		}
		u.mu.Lock()
		u.snapshots[name] = m
		u.mu.Unlock()
		return m, nil
	})
	if err != nil {
		u.logger.WithError(err).WithField("market", name).Warn("failed to load market")
		return nil, err
	}
	return v.(*entity.Market), nil
}

func (u *MarketUsecase) build(ctx context.Context, name string) (*entity.Market, error) {
	info, err := u.repo.FindMarket(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find market %s: %w", name, err)
	}
	companies, err := u.repo.ListCompanies(ctx, info.Name)
	if err != nil {
		return nil, fmt.Errorf("list companies of %s: %w", name, err)
	}
	m, err := entity.NewMarket(*info, companies, u.opts...)
	if err != nil {
		return nil, err
	}
	u.logger.WithFields(logrus.Fields{
		"market":    m.MarketName(),
		"companies": m.Len(),
	}).Info("market loaded")
	return m, nil
}
