package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrInvalidState      = errors.New("operation not allowed in current order state")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrReconciliation    = errors.New("reconciliation exceeds outstanding stock")
)

// InsufficientStockError carries enough detail for a corrective message
// (which stock item, how much was asked for, how much is on hand).
type InsufficientStockError struct {
	StockID     string
	RequestedKg decimal.Decimal
	AvailableKg decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: requested %skg, available %skg",
		e.StockID, e.RequestedKg, e.AvailableKg)
}

// Is makes errors.Is(err, ErrInsufficientStock) hold for the detailed form.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ReconciliationError reports a completion whose returned+kept weight for one
// stock position exceeds the net outstanding issued weight.
type ReconciliationError struct {
	StockID       string
	ReturnedKg    decimal.Decimal
	KeptKg        decimal.Decimal
	OutstandingKg decimal.Decimal
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation for stock %s: returned %skg + kept %skg exceeds outstanding %skg",
		e.StockID, e.ReturnedKg, e.KeptKg, e.OutstandingKg)
}

func (e *ReconciliationError) Is(target error) bool {
	return target == ErrReconciliation
}
