package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is money paid to a contractor. OrderID empty means a general
// contractor-level payment not tied to one order; such payments are excluded
// from per-order pending amounts and netted only at the contractor summary.
// Amount is strictly positive.
type Payment struct {
	ID           string
	ContractorID string
	OrderID      string // empty for general payments
	Amount       decimal.Decimal
	Date         time.Time
	Notes        string
}

// IsGeneral reports whether the payment is contractor-level rather than
// scoped to a single order.
func (p *Payment) IsGeneral() bool { return p.OrderID == "" }
