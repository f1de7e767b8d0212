// Package entity implements the finance contract over an in-memory snapshot of a
// market and its companies.
package entity

// MarketInfo holds the descriptive fields of a market as stored by a source.
type MarketInfo struct {
	Name      string `json:"name" yaml:"name"`
	OpenTime  string `json:"open_time" yaml:"open_time"`
	CloseTime string `json:"close_time" yaml:"close_time"`
	Currency  string `json:"currency" yaml:"currency"`
}

// CompanyInfo holds the fields of a listed company as stored by a source.
// Empty FullName or ExtraID mean the value is absent.
type CompanyInfo struct {
	Name     string `json:"name" yaml:"name"`
	FullName string `json:"full_name,omitempty" yaml:"full_name,omitempty"`
	ISIN     string `json:"isin" yaml:"isin"`
	Ticker   string `json:"ticker" yaml:"ticker"`
	ExtraID  string `json:"extra_id,omitempty" yaml:"extra_id,omitempty"`
}
