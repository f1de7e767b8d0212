// Package adapters provides the storage implementations of the market feature.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/felipet/finance-api/internal/feature/market/domain"
	"github.com/felipet/finance-api/internal/feature/market/domain/entity"
	"github.com/felipet/finance-api/internal/feature/market/usecase"
)

// marketGorm is the GORM implementation of usecase.MarketRepository.
type marketGorm struct {
	db *gorm.DB
}

var _ usecase.MarketRepository = (*marketGorm)(nil)

// NewMarketRepository creates a marketGorm repository on db.
func NewMarketRepository(db *gorm.DB) *marketGorm {
	return &marketGorm{db: db}
}

// Migrate creates or updates the markets and companies tables.
// On MySQL the ticker column gets a binary collation, so tickers that differ
// only in case stay distinct as they are for the other drivers.
func (r *marketGorm) Migrate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&MarketModel{}, &CompanyModel{}); err != nil {
		return err
	}
	if db.Dialector.Name() == "mysql" {
		return db.Exec(mysqlTickerCollation).Error
	}
	return nil
}

const mysqlTickerCollation = "ALTER TABLE companies MODIFY ticker VARCHAR(20) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL"

// ListMarkets returns every market ordered by name.
func (r *marketGorm) ListMarkets(ctx context.Context) ([]entity.MarketInfo, error) {
	var models []MarketModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	infos := make([]entity.MarketInfo, 0, len(models))
	for i := range models {
		infos = append(infos, *models[i].ToEntity())
	}
	return infos, nil
}

// FindMarket returns the market called name.
// It returns domain.ErrMarketNotFound when no such market exists.
func (r *marketGorm) FindMarket(ctx context.Context, name string) (*entity.MarketInfo, error) {
	var m MarketModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMarketNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// ListCompanies returns the active companies of market ordered by sort_key.
func (r *marketGorm) ListCompanies(ctx context.Context, market string) ([]entity.CompanyInfo, error) {
	var models []CompanyModel
	if err := r.db.WithContext(ctx).
		Where("market_name = ? AND is_active = ?", market, true).
		Order("sort_key ASC").
		Order("ticker ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	infos := make([]entity.CompanyInfo, 0, len(models))
	for i := range models {
		infos = append(infos, models[i].ToEntity())
	}
	return infos, nil
}

// SaveMarket stores info and replaces the companies of that market with
// companies, keeping their order. Nothing is written unless entity.NewMarket
// accepts the data.
func (r *marketGorm) SaveMarket(ctx context.Context, info entity.MarketInfo, companies []entity.CompanyInfo) error {
	if _, err := entity.NewMarket(info, companies); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"open_time", "close_time", "currency", "updated_at"}),
		}).Create(MarketModelFromEntity(info)).Error; err != nil {
			return fmt.Errorf("upsert market %s: %w", info.Name, err)
		}

		if err := tx.Where("market_name = ?", info.Name).Delete(&CompanyModel{}).Error; err != nil {
			return fmt.Errorf("clear companies of %s: %w", info.Name, err)
		}
		if len(companies) == 0 {
			return nil
		}

		models := make([]*CompanyModel, 0, len(companies))
		for i, c := range companies {
			models = append(models, CompanyModelFromEntity(info.Name, i, c))
		}
		if err := tx.CreateInBatches(models, 100).Error; err != nil {
			return fmt.Errorf("insert companies of %s: %w", info.Name, err)
		}
		return nil
	})
}

// SetCompanyActive marks the company with ticker in market as listed or delisted.
// Delisted companies are left out of ListCompanies.
func (r *marketGorm) SetCompanyActive(ctx context.Context, market, ticker string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&CompanyModel{}).
		Where("market_name = ? AND ticker = ?", market, ticker).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s in %s", domain.ErrCompanyNotFound, ticker, market)
	}
	return nil
}
