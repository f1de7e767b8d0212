package entity

import (
	"fmt"
	"regexp"

	finance "github.com/felipet/finance-api"
	"github.com/felipet/finance-api/internal/feature/market/domain"
)

// Market is an immutable finance.Market.
//
// The market owns its companies in a single slice; every Company handed out by a
// query points into that slice. Nothing is modified after NewMarket returns, so a
// Market may be read from several goroutines at once.
//
// Companies keep the order in which they were given to NewMarket, and
// ListTickers, Companies and StockByName all report them in that order.
//
// StockByName interprets its argument as a Go regular expression (RE2 syntax)
// and searches for it anywhere in the company name, case-sensitively unless the
// market was built WithCaseInsensitiveNames. A pattern that does not compile is
// matched as a literal substring instead, and an empty pattern matches every
// company.
type Market struct {
	info      MarketInfo
	companies []Company
	byTicker  map[string]int
	foldCase  bool
}

var _ finance.Market = (*Market)(nil)

// Option configures a Market.
type Option func(*Market)

// WithCaseInsensitiveNames makes StockByName ignore case.
func WithCaseInsensitiveNames() Option {
	return func(m *Market) { m.foldCase = true }
}

// NewMarket validates info and companies and builds a Market from them.
// Tickers must be unique within the market.
func NewMarket(info MarketInfo, companies []CompanyInfo, opts ...Option) (*Market, error) {
	if info.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidMarket)
	}

	m := &Market{
		info:      info,
		companies: make([]Company, 0, len(companies)),
		byTicker:  make(map[string]int, len(companies)),
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, ci := range companies {
		c, err := NewCompany(ci)
		if err != nil {
			return nil, fmt.Errorf("market %s: %w", info.Name, err)
		}
		if _, dup := m.byTicker[c.ticker]; dup {
			return nil, fmt.Errorf("market %s: %w: %s", info.Name, domain.ErrDuplicateTicker, c.ticker)
		}
		m.byTicker[c.ticker] = len(m.companies)
		m.companies = append(m.companies, c)
	}
	return m, nil
}

func (m *Market) MarketName() string { return m.info.Name }
func (m *Market) OpenTime() string   { return m.info.OpenTime }
func (m *Market) CloseTime() string  { return m.info.CloseTime }
func (m *Market) Currency() string   { return m.info.Currency }

// Info returns the descriptive fields of the market.
func (m *Market) Info() MarketInfo { return m.info }

// Len returns the number of companies in the market.
func (m *Market) Len() int { return len(m.companies) }

func (m *Market) ListTickers() []string {
	out := make([]string, 0, len(m.companies))
	for i := range m.companies {
		out = append(out, m.companies[i].ticker)
	}
	return out
}

func (m *Market) Companies() []finance.Company {
	out := make([]finance.Company, 0, len(m.companies))
	for i := range m.companies {
		out = append(out, &m.companies[i])
	}
	return out
}

func (m *Market) StockByName(pattern string) ([]finance.Company, bool) {
	re := m.compileName(pattern)

	var out []finance.Company
	for i := range m.companies {
		if re.MatchString(m.companies[i].name) {
			out = append(out, &m.companies[i])
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func (m *Market) StockByTicker(ticker string) (finance.Company, bool) {
	i, ok := m.byTicker[ticker]
	if !ok {
		return nil, false
	}
	return &m.companies[i], true
}

func (m *Market) compileName(pattern string) *regexp.Regexp {
	prefix := ""
	if m.foldCase {
		prefix = "(?i)"
	}
	if re, err := regexp.Compile(prefix + pattern); err == nil {
		return re
	}
	return regexp.MustCompile(prefix + regexp.QuoteMeta(pattern))
}
