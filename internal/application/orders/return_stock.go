package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/domain"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/finance"
)

// ReturnStock handles material coming back after an order was closed (e.g.
// the contractor later returns wool they had kept). It credits inventory and
// logs a Returned transaction at the frozen issue price, which lowers the
// order's net stock value by exactly the returned value. The weight may not
// exceed the remaining net outstanding for that stock position.
func (uc *UseCase) ReturnStock(ctx context.Context, orderID, stockID string, weightKg decimal.Decimal, date time.Time) (*entity.StockTransaction, error) {
	if stockID == "" || !weightKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.StockTransaction
	err := uc.tx.Run(ctx, func(l Ledger) error {
		order, err := l.Orders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.IsOpen() {
			// Open orders settle returns through completion reconciliation.
			return domain.ErrInvalidState
		}

		txns, err := l.Transactions.ListByOrder(orderID)
		if err != nil {
			return err
		}
		price := issuePrice(txns, stockID)
		if price.IsZero() {
			// Nothing of this stock was ever issued on the order.
			return domain.ErrNotFound
		}
		net := finance.Outstanding(deref(txns))[stockID]
		if weightKg.GreaterThan(net.Add(finance.EpsilonKg)) {
			return &domain.ReconciliationError{
				StockID:       stockID,
				ReturnedKg:    weightKg,
				OutstandingKg: net,
			}
		}

		item, err := l.Stock.GetForUpdate(stockID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		item.QuantityKg = item.QuantityKg.Add(weightKg)
		if err := l.Stock.Save(item); err != nil {
			return err
		}

		created = &entity.StockTransaction{
			ID:         uuid.New().String(),
			OrderID:    orderID,
			StockID:    stockID,
			Type:       entity.TxnReturned,
			WeightKg:   weightKg,
			PricePerKg: price,
			Date:       date,
			Notes:      "Post-closure return",
		}
		return l.Transactions.Create(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
