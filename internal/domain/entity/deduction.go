package entity

import "github.com/shopspring/decimal"

// Deduction is a financial cut applied at order completion (damaged carpet,
// short weight, advance adjustments...). Amount is strictly positive; the sum
// over an order forms its total deductions.
type Deduction struct {
	ID      string
	OrderID string
	Reason  string
	Amount  decimal.Decimal
}
