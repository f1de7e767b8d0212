// Package handler provides the HTTP handlers of the market feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	finance "github.com/felipet/finance-api"
	"github.com/felipet/finance-api/internal/feature/market/domain"
	"github.com/felipet/finance-api/internal/feature/market/transport/http/dto"
)

// MarketUsecase is the read side of the market feature.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type MarketUsecase interface {
	ListMarkets(ctx context.Context) ([]string, error)
	Market(ctx context.Context, name string) (finance.Market, error)
}

// MarketHandler handles HTTP requests about markets and their companies.
type MarketHandler struct {
	uc MarketUsecase
}

// NewMarketHandler creates a MarketHandler.
func NewMarketHandler(uc MarketUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// Register mounts the market routes on r.
func (h *MarketHandler) Register(r gin.IRoutes) {
	r.GET("/markets", h.ListMarkets)
	r.GET("/markets/:market", h.GetMarket)
	r.GET("/markets/:market/tickers", h.ListTickers)
	r.GET("/markets/:market/companies", h.ListCompanies)
	r.GET("/markets/:market/companies/:ticker", h.GetCompany)
}

// ListMarkets returns the names of every market.
//
// GET /markets
func (h *MarketHandler) ListMarkets(c *gin.Context) {
	names, err := h.uc.ListMarkets(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, names)
}

// GetMarket returns a market with all its companies.
//
// GET /markets/:market
func (h *MarketHandler) GetMarket(c *gin.Context) {
	m, ok := h.market(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.NewMarketDetail(m))
}

// ListTickers returns the tickers of a market.
//
// GET /markets/:market/tickers
func (h *MarketHandler) ListTickers(c *gin.Context) {
	m, ok := h.market(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, m.ListTickers())
}

// ListCompanies returns the companies of a market. With a name query parameter
// it returns the companies whose name matches that pattern, or 404 when none do.
//
// GET /markets/:market/companies?name=Banco
func (h *MarketHandler) ListCompanies(c *gin.Context) {
	m, ok := h.market(c)
	if !ok {
		return
	}

	pattern, filtered := c.GetQuery("name")
	if !filtered {
		c.JSON(http.StatusOK, dto.NewCompanyItems(m.Companies()))
		return
	}
	companies, found := m.StockByName(pattern)
	if !found {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "no company matches " + pattern})
		return
	}
	c.JSON(http.StatusOK, dto.NewCompanyItems(companies))
}

// GetCompany returns the company listed under an exact ticker.
//
// GET /markets/:market/companies/:ticker
func (h *MarketHandler) GetCompany(c *gin.Context) {
	m, ok := h.market(c)
	if !ok {
		return
	}
	ticker := c.Param("ticker")
	company, found := m.StockByTicker(ticker)
	if !found {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "unknown ticker " + ticker})
		return
	}
	c.JSON(http.StatusOK, dto.NewCompanyItem(company))
}

// market resolves the :market parameter, writing the error response on failure.
func (h *MarketHandler) market(c *gin.Context) (finance.Market, bool) {
	m, err := h.uc.Market(c.Request.Context(), c.Param("market"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return m, true
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrMarketNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}
