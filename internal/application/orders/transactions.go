package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/domain"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/finance"
)

// UpdateTransaction edits a transaction's weight and date. Only legal while
// the owning order is Open. Inventory is adjusted by the weight delta, and
// the edit is rejected if it would drive either the stock quantity or the
// order's net outstanding position negative.
func (uc *UseCase) UpdateTransaction(ctx context.Context, txnID string, weightKg decimal.Decimal, date time.Time) (*entity.StockTransaction, error) {
	if !weightKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.StockTransaction
	err := uc.tx.Run(ctx, func(l Ledger) error {
		txn, err := uc.openTransaction(l, txnID)
		if err != nil {
			return err
		}

		old := *txn
		txn.WeightKg = weightKg
		if !date.IsZero() {
			txn.Date = date
		}

		if err := uc.checkOutstanding(l, txn.OrderID, old.SignedWeight().Neg().Add(txn.SignedWeight()), txn.StockID); err != nil {
			return err
		}

		// The delta the warehouse sees: an Issued row consumes stock, a
		// Returned row restores it.
		inventoryDelta := old.SignedWeight().Sub(txn.SignedWeight())
		if err := uc.adjustInventory(l, txn.StockID, inventoryDelta); err != nil {
			return err
		}
		if err := l.Transactions.Save(txn); err != nil {
			return err
		}
		updated = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTransaction removes a transaction from an open order, reversing its
// inventory effect (deleting an issue restores stock; deleting a return
// re-deducts it).
func (uc *UseCase) DeleteTransaction(ctx context.Context, txnID string) error {
	return uc.tx.Run(ctx, func(l Ledger) error {
		txn, err := uc.openTransaction(l, txnID)
		if err != nil {
			return err
		}
		if err := uc.checkOutstanding(l, txn.OrderID, txn.SignedWeight().Neg(), txn.StockID); err != nil {
			return err
		}
		if err := uc.adjustInventory(l, txn.StockID, txn.SignedWeight()); err != nil {
			return err
		}
		return l.Transactions.Delete(txnID)
	})
}

// openTransaction loads a transaction and locks its order, insisting the
// order is still Open.
func (uc *UseCase) openTransaction(l Ledger, txnID string) (*entity.StockTransaction, error) {
	txn, err := l.Transactions.GetByID(txnID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, domain.ErrNotFound
	}
	order, err := l.Orders.GetForUpdate(txn.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !order.IsOpen() {
		return nil, domain.ErrInvalidState
	}
	return txn, nil
}

// checkOutstanding verifies the (order, stock) net issued weight stays
// non-negative after applying delta to the stored transactions.
func (uc *UseCase) checkOutstanding(l Ledger, orderID string, delta decimal.Decimal, stockID string) error {
	txns, err := l.Transactions.ListByOrder(orderID)
	if err != nil {
		return err
	}
	net := finance.Outstanding(deref(txns))[stockID].Add(delta)
	if net.LessThan(finance.EpsilonKg.Neg()) {
		return domain.ErrInvalidInput
	}
	return nil
}

// adjustInventory applies a signed quantity change to a locked stock row.
// Positive delta credits the warehouse, negative debits it and must not
// exceed what is on hand.
func (uc *UseCase) adjustInventory(l Ledger, stockID string, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	item, err := l.Stock.GetForUpdate(stockID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	next := item.QuantityKg.Add(delta)
	if next.IsNegative() {
		return &domain.InsufficientStockError{
			StockID:     stockID,
			RequestedKg: delta.Neg(),
			AvailableKg: item.QuantityKg,
		}
	}
	item.QuantityKg = next
	return l.Stock.Save(item)
}
