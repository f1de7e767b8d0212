package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/felipet/finance-api/financetest"
	"github.com/felipet/finance-api/internal/feature/market/domain"
	"github.com/felipet/finance-api/internal/feature/market/domain/entity"
	"github.com/felipet/finance-api/internal/feature/market/usecase"
)

// setupTestDB prepares an in-memory SQLite database with the market tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to initialize test database")

	// Every connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, NewMarketRepository(db).Migrate(context.Background()), "failed to migrate tables")
	return db
}

var ibex = entity.MarketInfo{Name: "IBEX35", OpenTime: "08:00", CloseTime: "16:30", Currency: "EUR"}

var ibexCompanies = []entity.CompanyInfo{
	{Name: "Repsol", FullName: "Repsol, S.A.", ISIN: "ES0173516115", Ticker: "REP", ExtraID: "A78374725"},
	{Name: "Inditex", ISIN: "ES0148396007", Ticker: "ITX"},
	{Name: "Banco Santander", FullName: "Banco Santander, S.A.", ISIN: "ES0113900J37", Ticker: "SAN"},
}

// seedMarket stores a market through SaveMarket.
func seedMarket(t *testing.T, repo *marketGorm, info entity.MarketInfo, companies []entity.CompanyInfo) {
	t.Helper()
	require.NoError(t, repo.SaveMarket(context.Background(), info, companies), "failed to seed market")
}

func TestNewMarketRepository(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewMarketRepository(db)

	assert.NotNil(t, repo, "repository should not be nil")
	assert.NotNil(t, repo.db, "database connection should not be nil")
}

func TestMarketGorm_FindMarket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seed    bool
		market  string
		want    *entity.MarketInfo
		wantErr error
	}{
		{name: "success: stored market", seed: true, market: "IBEX35", want: &ibex},
		{name: "failure: unknown market", seed: true, market: "DAX", wantErr: domain.ErrMarketNotFound},
		{name: "failure: empty database", market: "IBEX35", wantErr: domain.ErrMarketNotFound},
		{name: "failure: name is case-sensitive", seed: true, market: "ibex35", wantErr: domain.ErrMarketNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewMarketRepository(setupTestDB(t))
			if tt.seed {
				seedMarket(t, repo, ibex, ibexCompanies)
			}

			got, err := repo.FindMarket(context.Background(), tt.market)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarketGorm_ListMarkets(t *testing.T) {
	t.Parallel()

	repo := NewMarketRepository(setupTestDB(t))

	empty, err := repo.ListMarkets(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	seedMarket(t, repo, entity.MarketInfo{Name: "NASDAQ100", OpenTime: "14:30", CloseTime: "21:00", Currency: "USD"}, nil)
	seedMarket(t, repo, ibex, ibexCompanies)

	markets, err := repo.ListMarkets(context.Background())
	require.NoError(t, err)
	require.Len(t, markets, 2)
	assert.Equal(t, "IBEX35", markets[0].Name, "markets are ordered by name")
	assert.Equal(t, "NASDAQ100", markets[1].Name)
}

func TestMarketGorm_ListCompanies(t *testing.T) {
	t.Parallel()

	t.Run("success: keeps saved order and optional fields", func(t *testing.T) {
		t.Parallel()

		repo := NewMarketRepository(setupTestDB(t))
		seedMarket(t, repo, ibex, ibexCompanies)

		got, err := repo.ListCompanies(context.Background(), "IBEX35")

		require.NoError(t, err)
		assert.Equal(t, ibexCompanies, got)
	})

	t.Run("success: excludes delisted companies", func(t *testing.T) {
		t.Parallel()

		repo := NewMarketRepository(setupTestDB(t))
		seedMarket(t, repo, ibex, ibexCompanies)
		require.NoError(t, repo.SetCompanyActive(context.Background(), "IBEX35", "ITX", false))

		got, err := repo.ListCompanies(context.Background(), "IBEX35")

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "REP", got[0].Ticker)
		assert.Equal(t, "SAN", got[1].Ticker)
	})

	t.Run("success: unknown market yields empty list", func(t *testing.T) {
		t.Parallel()

		repo := NewMarketRepository(setupTestDB(t))

		got, err := repo.ListCompanies(context.Background(), "DAX")

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestMarketGorm_SaveMarket(t *testing.T) {
	t.Parallel()

	t.Run("success: replaces market and companies", func(t *testing.T) {
		t.Parallel()

		repo := NewMarketRepository(setupTestDB(t))
		seedMarket(t, repo, ibex, ibexCompanies)

		updated := ibex
		updated.CloseTime = "16:35"
		replacement := []entity.CompanyInfo{{Name: "Iberdrola", ISIN: "ES0144580Y14", Ticker: "IBE"}}
		require.NoError(t, repo.SaveMarket(context.Background(), updated, replacement))

		info, err := repo.FindMarket(context.Background(), "IBEX35")
		require.NoError(t, err)
		assert.Equal(t, "16:35", info.CloseTime)

		got, err := repo.ListCompanies(context.Background(), "IBEX35")
		require.NoError(t, err)
		assert.Equal(t, replacement, got)

		markets, err := repo.ListMarkets(context.Background())
		require.NoError(t, err)
		assert.Len(t, markets, 1, "upsert must not duplicate the market row")
	})

	t.Run("success: markets do not share companies", func(t *testing.T) {
		t.Parallel()

		repo := NewMarketRepository(setupTestDB(t))
		seedMarket(t, repo, ibex, ibexCompanies)
		seedMarket(t, repo, entity.MarketInfo{Name: "MIB", OpenTime: "08:00", CloseTime: "16:30", Currency: "EUR"},
			[]entity.CompanyInfo{{Name: "Ferrari", ISIN: "NL0011585146", Ticker: "REP"}})

		got, err := repo.ListCompanies(context.Background(), "IBEX35")
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("success: tickers differing in case are distinct", func(t *testing.T) {
		t.Parallel()

		repo := NewMarketRepository(setupTestDB(t))
		companies := []entity.CompanyInfo{
			{Name: "Inditex", ISIN: "ES0148396007", Ticker: "ITX"},
			{Name: "Inditex Lower", ISIN: "XX0000000003", Ticker: "itx"},
		}
		require.NoError(t, repo.SaveMarket(context.Background(), ibex, companies))

		got, err := repo.ListCompanies(context.Background(), "IBEX35")
		require.NoError(t, err)
		assert.Equal(t, companies, got)

		require.NoError(t, repo.SetCompanyActive(context.Background(), "IBEX35", "itx", false))
		got, err = repo.ListCompanies(context.Background(), "IBEX35")
		require.NoError(t, err)
		assert.Equal(t, companies[:1], got)
	})

	t.Run("failure: duplicate ticker writes nothing", func(t *testing.T) {
		t.Parallel()

		repo := NewMarketRepository(setupTestDB(t))
		err := repo.SaveMarket(context.Background(), ibex, []entity.CompanyInfo{
			{Name: "One", ISIN: "XX0000000001", Ticker: "DUP"},
			{Name: "Two", ISIN: "XX0000000002", Ticker: "DUP"},
		})

		assert.ErrorIs(t, err, domain.ErrDuplicateTicker)
		_, err = repo.FindMarket(context.Background(), "IBEX35")
		assert.ErrorIs(t, err, domain.ErrMarketNotFound)
	})

	t.Run("failure: company without isin", func(t *testing.T) {
		t.Parallel()

		repo := NewMarketRepository(setupTestDB(t))
		err := repo.SaveMarket(context.Background(), ibex, []entity.CompanyInfo{{Name: "Nameless", Ticker: "NOP"}})

		assert.ErrorIs(t, err, domain.ErrInvalidCompany)
	})
}

func TestMarketGorm_SetCompanyActive(t *testing.T) {
	t.Parallel()

	repo := NewMarketRepository(setupTestDB(t))
	seedMarket(t, repo, ibex, ibexCompanies)

	err := repo.SetCompanyActive(context.Background(), "IBEX35", "XXX", false)
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)

	require.NoError(t, repo.SetCompanyActive(context.Background(), "IBEX35", "REP", false))
	require.NoError(t, repo.SetCompanyActive(context.Background(), "IBEX35", "REP", true))

	got, err := repo.ListCompanies(context.Background(), "IBEX35")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestMarketGorm_Conformance(t *testing.T) {
	t.Parallel()

	repo := NewMarketRepository(setupTestDB(t))
	seedMarket(t, repo, ibex, ibexCompanies)

	m, err := usecase.NewMarketUsecase(repo, nil).Market(context.Background(), "IBEX35")
	require.NoError(t, err)

	financetest.RunMarketConformance(t, m)
}
