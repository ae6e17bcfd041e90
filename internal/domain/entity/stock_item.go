package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem is one raw-material SKU (e.g. wool of a given quality and shade).
// QuantityKg never goes below zero: each issue decrements it, each return
// increments it, and issuing past the available quantity is rejected before
// any mutation. PricePerKg is the *current* price; the price a transaction
// carries is frozen at issue time and repricing never rewrites history.
type StockItem struct {
	ID         string
	Type       string // wool, silk, cotton...
	Quality    string
	ColorShade string // shade card number, optional
	PricePerKg decimal.Decimal
	QuantityKg decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Description is the human grouping key used by held-stock reports
// (type + quality + shade identify a position regardless of id).
func (s *StockItem) Description() string {
	if s.ColorShade == "" {
		return s.Type + " " + s.Quality
	}
	return s.Type + " " + s.Quality + " #" + s.ColorShade
}
