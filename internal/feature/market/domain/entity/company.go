package entity

import (
	"fmt"

	finance "github.com/felipet/finance-api"
	"github.com/felipet/finance-api/internal/feature/market/domain"
)

// Company is an immutable finance.Company.
type Company struct {
	name     string
	fullName string
	isin     string
	ticker   string
	extraID  string
}

var (
	_ finance.Company = (*Company)(nil)
	_ fmt.Stringer    = (*Company)(nil)
	_ fmt.GoStringer  = (*Company)(nil)
)

// NewCompany validates info and builds a Company from it.
// A full name equal to the short name is dropped.
func NewCompany(info CompanyInfo) (Company, error) {
	switch {
	case info.Name == "":
		return Company{}, fmt.Errorf("%w: name is required", domain.ErrInvalidCompany)
	case info.Ticker == "":
		return Company{}, fmt.Errorf("%w: ticker is required for %q", domain.ErrInvalidCompany, info.Name)
	case info.ISIN == "":
		return Company{}, fmt.Errorf("%w: isin is required for %q", domain.ErrInvalidCompany, info.Ticker)
	}

	fullName := info.FullName
	if fullName == info.Name {
		fullName = ""
	}
	return Company{
		name:     info.Name,
		fullName: fullName,
		isin:     info.ISIN,
		ticker:   info.Ticker,
		extraID:  info.ExtraID,
	}, nil
}

func (c *Company) Name() string   { return c.name }
func (c *Company) ISIN() string   { return c.isin }
func (c *Company) Ticker() string { return c.ticker }

func (c *Company) FullName() (string, bool) {
	return c.fullName, c.fullName != ""
}

func (c *Company) ExtraID() (string, bool) {
	return c.extraID, c.extraID != ""
}

// Info returns the record the company was built from, after normalisation.
func (c *Company) Info() CompanyInfo {
	return CompanyInfo{
		Name:     c.name,
		FullName: c.fullName,
		ISIN:     c.isin,
		Ticker:   c.ticker,
		ExtraID:  c.extraID,
	}
}

// String returns the display form, "<ticker>: <name>".
func (c *Company) String() string { return finance.Display(c) }

// GoString returns the positional debug form.
func (c *Company) GoString() string { return finance.Debug(c) }
