package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/domain"
	"github.com/mirzacarpets/ledger-api/internal/domain/dimension"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/finance"
)

// ReconciliationEntry settles one outstanding stock position at completion.
// ReturnedKg goes back into inventory; KeptKg is material the contractor
// keeps against pay — it produces no transaction and no inventory credit, so
// its value stays inside the order's net stock value.
type ReconciliationEntry struct {
	StockID    string
	ReturnedKg decimal.Decimal
	KeptKg     decimal.Decimal
}

// DeductionInput is one completion-time financial cut.
type DeductionInput struct {
	Reason string
	Amount decimal.Decimal
}

// CompleteInput closes an order. Nil final fields keep the values already on
// the order; supplying final dimensions and rate without a final wage
// recomputes the wage from them.
type CompleteInput struct {
	DateCompleted     time.Time
	FinalWage         *decimal.Decimal
	FinalLength       *dimension.Dimension
	FinalWidth        *dimension.Dimension
	FinalPricePerSqFt *decimal.Decimal
	Reconciliation    []ReconciliationEntry
	Deductions        []DeductionInput
}

// Complete performs the terminal Open -> Closed transition: validates every
// reconciliation entry against the outstanding positions, credits returned
// weight back to inventory at the frozen issue price, stores deductions, and
// freezes wage and dimensions as final. Nothing commits on any failure.
func (uc *UseCase) Complete(ctx context.Context, orderID string, in CompleteInput) (*entity.Order, error) {
	if in.DateCompleted.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	for _, e := range in.Reconciliation {
		if e.StockID == "" || e.ReturnedKg.IsNegative() || e.KeptKg.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	for _, d := range in.Deductions {
		if d.Reason == "" || !d.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.FinalLength != nil {
		if err := in.FinalLength.Validate(); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.FinalWidth != nil {
		if err := in.FinalWidth.Validate(); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	var order *entity.Order
	err := uc.tx.Run(ctx, func(l Ledger) error {
		var err error
		order, err = l.Orders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.IsOpen() {
			return domain.ErrInvalidState
		}

		txns, err := l.Transactions.ListByOrder(orderID)
		if err != nil {
			return err
		}
		outstanding := finance.Outstanding(deref(txns))

		// Entries settle against the remainder, so repeated entries for the
		// same stock cannot each claim the full outstanding weight.
		for _, e := range in.Reconciliation {
			net := outstanding[e.StockID]
			settled := e.ReturnedKg.Add(e.KeptKg)
			if settled.GreaterThan(net.Add(finance.EpsilonKg)) {
				return &domain.ReconciliationError{
					StockID:       e.StockID,
					ReturnedKg:    e.ReturnedKg,
					KeptKg:        e.KeptKg,
					OutstandingKg: net,
				}
			}
			outstanding[e.StockID] = net.Sub(settled)
		}

		for _, e := range in.Reconciliation {
			if !e.ReturnedKg.GreaterThan(decimal.Zero) {
				continue
			}
			item, err := l.Stock.GetForUpdate(e.StockID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			item.QuantityKg = item.QuantityKg.Add(e.ReturnedKg)
			if err := l.Stock.Save(item); err != nil {
				return err
			}
			if err := l.Transactions.Create(&entity.StockTransaction{
				ID:         uuid.New().String(),
				OrderID:    orderID,
				StockID:    e.StockID,
				Type:       entity.TxnReturned,
				WeightKg:   e.ReturnedKg,
				PricePerKg: issuePrice(txns, e.StockID),
				Date:       in.DateCompleted,
				Notes:      "Returned to inventory",
			}); err != nil {
				return err
			}
		}

		for _, d := range in.Deductions {
			if err := l.Deductions.Create(&entity.Deduction{
				ID:      uuid.New().String(),
				OrderID: orderID,
				Reason:  d.Reason,
				Amount:  d.Amount,
			}); err != nil {
				return err
			}
		}

		if in.FinalLength != nil {
			order.Length = *in.FinalLength
		}
		if in.FinalWidth != nil {
			order.Width = *in.FinalWidth
		}
		if in.FinalPricePerSqFt != nil {
			if in.FinalPricePerSqFt.IsNegative() {
				return domain.ErrInvalidInput
			}
			order.PricePerSqFt = *in.FinalPricePerSqFt
		}
		switch {
		case in.FinalWage != nil:
			if in.FinalWage.IsNegative() {
				return domain.ErrInvalidInput
			}
			order.Wage = *in.FinalWage
		case in.FinalLength != nil || in.FinalWidth != nil || in.FinalPricePerSqFt != nil:
			order.Wage = order.ComputedWage()
		}

		completed := in.DateCompleted
		order.DateCompleted = &completed
		order.Status = entity.OrderStatusClosed
		order.UpdatedAt = uc.now()
		return l.Orders.Save(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// issuePrice finds the frozen price for a return: the price on the most
// recent Issued transaction of that stock within the order.
func issuePrice(txns []*entity.StockTransaction, stockID string) decimal.Decimal {
	price := decimal.Zero
	for _, t := range txns {
		if t.StockID == stockID && t.Type == entity.TxnIssued {
			price = t.PricePerKg
		}
	}
	return price
}
