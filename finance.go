// Package finance defines a data-access contract for financial market information.
//
// The package does not implement any data source. It describes what an object
// representing a stock exchange (a Market) and the companies listed in it (a
// Company) must provide, so that libraries can be written against a market such as
// IBEX35 or NASDAQ100 without knowing which implementation is behind it.
//
// Optional values follow the comma-ok idiom: the boolean result is false when the
// value is absent.
package finance

// Market describes one stock exchange or index and the companies listed in it.
//
// Implementations own the Company values they return. Callers receive views into
// that storage and must treat them as read-only. No method performs I/O; whatever
// is needed to materialise the data happens before a Market is handed out.
type Market interface {
	// MarketName returns the display name of the market, e.g. IBEX35.
	MarketName() string

	// ListTickers returns the ticker of every company in the market.
	//
	// The order is implementation-defined. An empty market yields an empty,
	// non-nil slice.
	ListTickers() []string

	// StockByName returns every company whose name matches pattern.
	//
	// pattern is a search pattern rather than a literal name, so an ambiguous
	// value such as "Bank" may match several companies. Implementations document
	// their matching rules. The boolean is false when nothing matches; when it is
	// true the slice holds at least one company and no match is left out.
	StockByName(pattern string) ([]Company, bool)

	// StockByTicker returns the company whose ticker is exactly ticker.
	//
	// The comparison is case-sensitive over the full string: a partial or prefix
	// ticker never matches.
	StockByTicker(ticker string) (Company, bool)

	// OpenTime returns the opening time of the market (UTC).
	OpenTime() string

	// CloseTime returns the closing time of the market (UTC).
	CloseTime() string

	// Currency returns the ISO 4217 code of the currency used by the market.
	Currency() string

	// Companies returns every company in the market, in the same order as
	// ListTickers. An empty market yields an empty, non-nil slice.
	Companies() []Company
}

// Company describes one security listed in a Market.
type Company interface {
	// Name returns the name most often used to refer to the company.
	Name() string

	// FullName returns the legal name of the company. It is absent when no
	// full name was provided, which is common when it equals Name.
	FullName() (string, bool)

	// ISIN returns the International Securities Identification Number.
	ISIN() string

	// Ticker returns the symbol that identifies the stock in its market.
	Ticker() string

	// ExtraID returns a jurisdiction-specific identifier, such as the Spanish
	// NIF. It is absent when the issuing jurisdiction defines none.
	ExtraID() (string, bool)
}
