package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/felipet/finance-api/internal/feature/market/domain"
	"github.com/felipet/finance-api/internal/feature/market/domain/entity"
	"github.com/felipet/finance-api/internal/feature/market/usecase"
)

// Catalog is a set of markets described in a YAML document:
//
//	markets:
//	  - name: IBEX35
//	    open_time: "08:00"
//	    close_time: "16:30"
//	    currency: EUR
//	    companies:
//	      - name: Inditex
//	        full_name: Industria de Diseño Textil S.A.
//	        isin: ES0148396007
//	        ticker: ITX
//	        extra_id: A15075062
type Catalog struct {
	Markets []CatalogMarket `yaml:"markets"`
}

// CatalogMarket is one market of a Catalog with its companies in listing order.
type CatalogMarket struct {
	entity.MarketInfo `yaml:",inline"`
	Companies         []entity.CompanyInfo `yaml:"companies"`
}

// ParseCatalog decodes a catalog from r. Every market is validated as it would
// be when loaded, and market names must be unique.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return &c, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(c.Markets))
	for _, m := range c.Markets {
		if _, err := entity.NewMarket(m.MarketInfo, m.Companies); err != nil {
			return nil, err
		}
		if _, dup := seen[m.Name]; dup {
			return nil, fmt.Errorf("%w: market %s listed twice", domain.ErrInvalidMarket, m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	return &c, nil
}

// LoadCatalog reads and parses the catalog file at path.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := ParseCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// catalogRepository serves a parsed Catalog as a usecase.MarketRepository.
type catalogRepository struct {
	catalog *Catalog
}

var _ usecase.MarketRepository = (*catalogRepository)(nil)

// NewCatalogRepository creates a read-only repository over c.
func NewCatalogRepository(c *Catalog) *catalogRepository {
	if c == nil {
		c = &Catalog{}
	}
	return &catalogRepository{catalog: c}
}

// ListMarkets returns the markets in catalog order.
func (r *catalogRepository) ListMarkets(ctx context.Context) ([]entity.MarketInfo, error) {
	infos := make([]entity.MarketInfo, 0, len(r.catalog.Markets))
	for _, m := range r.catalog.Markets {
		infos = append(infos, m.MarketInfo)
	}
	return infos, nil
}

// FindMarket returns the market called name, or domain.ErrMarketNotFound.
func (r *catalogRepository) FindMarket(ctx context.Context, name string) (*entity.MarketInfo, error) {
	m, ok := r.find(name)
	if !ok {
		return nil, domain.ErrMarketNotFound
	}
	info := m.MarketInfo
	return &info, nil
}

// ListCompanies returns a copy of the companies of market.
func (r *catalogRepository) ListCompanies(ctx context.Context, market string) ([]entity.CompanyInfo, error) {
	m, ok := r.find(market)
	if !ok {
		return nil, domain.ErrMarketNotFound
	}
	return append(make([]entity.CompanyInfo, 0, len(m.Companies)), m.Companies...), nil
}

func (r *catalogRepository) find(name string) (*CatalogMarket, bool) {
	for i := range r.catalog.Markets {
		if r.catalog.Markets[i].Name == name {
			return &r.catalog.Markets[i], true
		}
	}
	return nil, false
}
