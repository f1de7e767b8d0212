// Package dto defines data transfer objects for the market HTTP API.
package dto

import finance "github.com/felipet/finance-api"

// CompanyItem represents a company in the API response.
// Absent optional values are omitted.
type CompanyItem struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	FullName string `json:"full_name,omitempty"`
	ISIN     string `json:"isin"`
	ExtraID  string `json:"extra_id,omitempty"`
	Display  string `json:"display"`
}

// MarketDetail represents a market with its companies.
type MarketDetail struct {
	Name      string        `json:"name"`
	OpenTime  string        `json:"open_time"`
	CloseTime string        `json:"close_time"`
	Currency  string        `json:"currency"`
	Companies []CompanyItem `json:"companies"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewCompanyItem converts a finance.Company.
func NewCompanyItem(c finance.Company) CompanyItem {
	item := CompanyItem{
		Ticker:  c.Ticker(),
		Name:    c.Name(),
		ISIN:    c.ISIN(),
		Display: finance.Display(c),
	}
	if v, ok := c.FullName(); ok {
		item.FullName = v
	}
	if v, ok := c.ExtraID(); ok {
		item.ExtraID = v
	}
	return item
}

// NewCompanyItems converts companies, keeping their order. The result is never nil.
func NewCompanyItems(companies []finance.Company) []CompanyItem {
	out := make([]CompanyItem, 0, len(companies))
	for _, c := range companies {
		out = append(out, NewCompanyItem(c))
	}
	return out
}

// NewMarketDetail converts a finance.Market.
func NewMarketDetail(m finance.Market) MarketDetail {
	return MarketDetail{
		Name:      m.MarketName(),
		OpenTime:  m.OpenTime(),
		CloseTime: m.CloseTime(),
		Currency:  m.Currency(),
		Companies: NewCompanyItems(m.Companies()),
	}
}
