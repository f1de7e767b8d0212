// Package domain defines domain-level errors for the market feature.
package domain

import "errors"

// Domain errors for market operations.
// Lookup misses inside a loaded market are not errors; these cover building and
// finding whole markets.
var (
	// ErrMarketNotFound indicates that no market is stored under the given name.
	ErrMarketNotFound = errors.New("market not found")

	// ErrCompanyNotFound indicates that a stored market has no company with the given ticker.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrInvalidMarket indicates that a market record lacks a required field.
	ErrInvalidMarket = errors.New("invalid market")

	// ErrInvalidCompany indicates that a company record lacks a required field.
	ErrInvalidCompany = errors.New("invalid company")

	// ErrDuplicateTicker indicates that two companies of one market share a ticker.
	ErrDuplicateTicker = errors.New("duplicate ticker in market")
)
