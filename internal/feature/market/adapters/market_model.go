package adapters

import (
	"time"

	"github.com/felipet/finance-api/internal/feature/market/domain/entity"
)

// MarketModel is the GORM model for the markets table.
type MarketModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:64;not null;uniqueIndex"`
	OpenTime  string    `gorm:"size:16;not null"`
	CloseTime string    `gorm:"size:16;not null"`
	Currency  string    `gorm:"size:3;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM.
func (MarketModel) TableName() string {
	return "markets"
}

// ToEntity converts the GORM model to a domain record.
func (m *MarketModel) ToEntity() *entity.MarketInfo {
	return &entity.MarketInfo{
		Name:      m.Name,
		OpenTime:  m.OpenTime,
		CloseTime: m.CloseTime,
		Currency:  m.Currency,
	}
}

// MarketModelFromEntity converts a domain record to a GORM model.
func MarketModelFromEntity(info entity.MarketInfo) *MarketModel {
	return &MarketModel{
		Name:      info.Name,
		OpenTime:  info.OpenTime,
		CloseTime: info.CloseTime,
		Currency:  info.Currency,
	}
}

// CompanyModel is the GORM model for the companies table.
// A ticker is unique within its market.
type CompanyModel struct {
	ID         uint      `gorm:"primaryKey"`
	MarketName string    `gorm:"size:64;not null;uniqueIndex:idx_companies_market_ticker,priority:1"`
	Ticker     string    `gorm:"size:20;not null;uniqueIndex:idx_companies_market_ticker,priority:2"`
	Name       string    `gorm:"size:255;not null"`
	FullName   *string   `gorm:"size:255"`
	ISIN       string    `gorm:"column:isin;size:12;not null"`
	ExtraID    *string   `gorm:"size:32"`
	SortKey    int       `gorm:"not null;default:0"`
	IsActive   bool      `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM.
func (CompanyModel) TableName() string {
	return "companies"
}

// ToEntity converts the GORM model to a domain record.
func (m *CompanyModel) ToEntity() entity.CompanyInfo {
	info := entity.CompanyInfo{
		Name:   m.Name,
		ISIN:   m.ISIN,
		Ticker: m.Ticker,
	}
	if m.FullName != nil {
		info.FullName = *m.FullName
	}
	if m.ExtraID != nil {
		info.ExtraID = *m.ExtraID
	}
	return info
}

// CompanyModelFromEntity converts a domain record to a GORM model listed in market
// at position sortKey.
func CompanyModelFromEntity(market string, sortKey int, info entity.CompanyInfo) *CompanyModel {
	return &CompanyModel{
		MarketName: market,
		Ticker:     info.Ticker,
		Name:       info.Name,
		FullName:   optional(info.FullName),
		ISIN:       info.ISIN,
		ExtraID:    optional(info.ExtraID),
		SortKey:    sortKey,
		IsActive:   true,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
