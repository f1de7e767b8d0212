// Package financetest provides test doubles and a conformance suite for
// implementations of the finance contract.
package financetest

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	finance "github.com/felipet/finance-api"
)

// MockCompany is a fixed finance.Company. Empty optional fields are absent.
type MockCompany struct {
	name     string
	fullName string
	isin     string
	ticker   string
	extraID  string
}

var _ finance.Company = (*MockCompany)(nil)

// NewMockCompany builds a MockCompany. Pass "" for fullName or extraID to leave
// them absent.
func NewMockCompany(name, fullName, isin, ticker, extraID string) *MockCompany {
	return &MockCompany{name: name, fullName: fullName, isin: isin, ticker: ticker, extraID: extraID}
}

func (c *MockCompany) Name() string   { return c.name }
func (c *MockCompany) ISIN() string   { return c.isin }
func (c *MockCompany) Ticker() string { return c.ticker }

func (c *MockCompany) FullName() (string, bool) {
	return c.fullName, c.fullName != ""
}

func (c *MockCompany) ExtraID() (string, bool) {
	return c.extraID, c.extraID != ""
}

// MockMarket is a linear-scan finance.Market. StockByName matches a plain,
// case-sensitive substring.
type MockMarket struct {
	name      string
	openTime  string
	closeTime string
	currency  string
	companies []*MockCompany
}

var _ finance.Market = (*MockMarket)(nil)

// NewMockMarket builds a MockMarket holding companies in the given order.
func NewMockMarket(name, openTime, closeTime, currency string, companies ...*MockCompany) *MockMarket {
	return &MockMarket{
		name:      name,
		openTime:  openTime,
		closeTime: closeTime,
		currency:  currency,
		companies: companies,
	}
}

func (m *MockMarket) MarketName() string { return m.name }
func (m *MockMarket) OpenTime() string   { return m.openTime }
func (m *MockMarket) CloseTime() string  { return m.closeTime }
func (m *MockMarket) Currency() string   { return m.currency }

func (m *MockMarket) ListTickers() []string {
	out := make([]string, 0, len(m.companies))
	for _, c := range m.companies {
		out = append(out, c.ticker)
	}
	return out
}

func (m *MockMarket) Companies() []finance.Company {
	out := make([]finance.Company, 0, len(m.companies))
	for _, c := range m.companies {
		out = append(out, c)
	}
	return out
}

func (m *MockMarket) StockByName(pattern string) ([]finance.Company, bool) {
	var out []finance.Company
	for _, c := range m.companies {
		if strings.Contains(c.name, pattern) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func (m *MockMarket) StockByTicker(ticker string) (finance.Company, bool) {
	for _, c := range m.companies {
		if c.ticker == ticker {
			return c, true
		}
	}
	return nil, false
}

// noMatchName is a name no real listing carries, under either substring or
// regular-expression matching.
const noMatchName = "\x00no company is called this\x00"

var plainName = regexp.MustCompile(`^[\p{L}\p{N} ]+$`)

// RunMarketConformance checks the properties every finance.Market must hold,
// whatever companies m contains.
func RunMarketConformance(t *testing.T, m finance.Market) {
	t.Helper()

	t.Run("tickers match companies", func(t *testing.T) {
		tickers := m.ListTickers()
		companies := m.Companies()
		require.NotNil(t, tickers, "ListTickers must not return nil")
		require.NotNil(t, companies, "Companies must not return nil")
		require.Len(t, tickers, len(companies))

		want := make([]string, 0, len(companies))
		for _, c := range companies {
			want = append(want, c.Ticker())
		}
		assert.ElementsMatch(t, want, tickers)
	})

	t.Run("tickers are unique", func(t *testing.T) {
		seen := make(map[string]struct{})
		for _, ticker := range m.ListTickers() {
			_, dup := seen[ticker]
			assert.False(t, dup, "duplicate ticker %q", ticker)
			seen[ticker] = struct{}{}
		}
	})

	t.Run("stock by ticker is exact", func(t *testing.T) {
		for _, c := range m.Companies() {
			got, ok := m.StockByTicker(c.Ticker())
			if assert.True(t, ok, "ticker %q not found", c.Ticker()) {
				assert.Equal(t, c.Ticker(), got.Ticker())
				assert.Equal(t, c.ISIN(), got.ISIN())
				assert.Equal(t, c.Name(), got.Name())
			}

			for _, probe := range tickerProbes(c.Ticker()) {
				got, ok := m.StockByTicker(probe)
				if ok {
					assert.Equal(t, probe, got.Ticker(), "query %q returned a partial match", probe)
				}
			}
		}
	})

	t.Run("stock by name absent on no match", func(t *testing.T) {
		got, ok := m.StockByName(noMatchName)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("stock by name finds every company", func(t *testing.T) {
		for _, c := range m.Companies() {
			if !plainName.MatchString(c.Name()) {
				continue
			}
			got, ok := m.StockByName(c.Name())
			require.True(t, ok, "name %q not found", c.Name())
			require.NotEmpty(t, got)

			found := false
			for _, g := range got {
				if g.Ticker() == c.Ticker() {
					found = true
					break
				}
			}
			assert.True(t, found, "company %q missing from matches for its own name", c.Ticker())
		}
	})
}

// tickerProbes returns near-miss queries for ticker: its proper prefixes and
// suffixes, and case variants.
func tickerProbes(ticker string) []string {
	var out []string
	for i := 1; i < len(ticker); i++ {
		out = append(out, ticker[:i], ticker[i:])
	}
	if lower := strings.ToLower(ticker); lower != ticker {
		out = append(out, lower)
	}
	if upper := strings.ToUpper(ticker); upper != ticker {
		out = append(out, upper)
	}
	out = append(out, ticker+" ", " "+ticker)
	return out
}
