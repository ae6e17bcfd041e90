package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock transaction types.
const (
	TxnIssued   = "Issued"
	TxnReturned = "Returned"
)

// StockTransaction is one material movement against an order. WeightKg is
// always positive; the direction lives in Type. PricePerKg is the stock
// item's price at issue time and never changes afterwards — returns are
// valued at the price the material was issued at, not today's price.
//
// Rows are immutable except for the explicit edit/delete operations, which
// are only legal while the owning order is Open. For every (order, stock)
// pair the net issued weight (Issued - Returned) stays >= 0.
type StockTransaction struct {
	ID         string
	OrderID    string
	StockID    string
	Type       string
	WeightKg   decimal.Decimal
	PricePerKg decimal.Decimal
	Date       time.Time
	Notes      string
}

// Value is the monetary worth of the movement at its frozen price.
func (t *StockTransaction) Value() decimal.Decimal {
	return t.WeightKg.Mul(t.PricePerKg)
}

// SignedWeight is +WeightKg for issues and -WeightKg for returns, the form
// the netting arithmetic wants.
func (t *StockTransaction) SignedWeight() decimal.Decimal {
	if t.Type == TxnReturned {
		return t.WeightKg.Neg()
	}
	return t.WeightKg
}
