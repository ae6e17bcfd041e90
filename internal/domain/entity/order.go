package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/domain/dimension"
)

// Order states. The lifecycle is Open -> Closed with no further transitions;
// reopening is modelled as a new order.
const (
	OrderStatusOpen   = "Open"
	OrderStatusClosed = "Closed"
)

// Order is one carpet being woven by a contractor: the dimensions and rate
// that produce the wage, the due date and penalty that produce the fine, and
// the anchor for stock transactions, payments and deductions.
//
// Wage is either the agreed figure or length x width x PricePerSqFt. Once the
// order is Closed its wage and dimensions are frozen as final values.
type Order struct {
	ID            string
	ContractorID  string
	Quality       string // carpet quality, free text, e.g. "60x60"
	DesignNumber  string
	ShadeCard     string
	Length        dimension.Dimension
	Width         dimension.Dimension
	PricePerSqFt  decimal.Decimal
	Wage          decimal.Decimal
	PenaltyPerDay decimal.Decimal
	DateIssued    time.Time
	DateDue       *time.Time
	DateCompleted *time.Time
	Status        string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOpen reports whether mutating operations (issue, reassign, edit) are legal.
func (o *Order) IsOpen() bool { return o.Status == OrderStatusOpen }

// AreaSqFt is the carpet area in square feet from the structured dimensions.
func (o *Order) AreaSqFt() decimal.Decimal {
	return dimension.Area(o.Length, o.Width)
}

// ComputedWage derives the wage from area and rate. Callers use it when no
// explicit wage override is supplied; zero inputs yield a zero wage.
func (o *Order) ComputedWage() decimal.Decimal {
	return o.AreaSqFt().Mul(o.PricePerSqFt)
}
