package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/mirzacarpets/ledger-api/internal/domain"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
)

// Reassign moves an open order to a new contractor, recording the reason in
// the audit log. Transactions and payments stay attached to the order, so
// held-stock attribution follows the new contractor automatically.
func (uc *UseCase) Reassign(ctx context.Context, orderID, newContractorID, reason string) (*entity.Order, error) {
	if newContractorID == "" || reason == "" {
		return nil, domain.ErrInvalidInput
	}
	contractor, err := uc.contractors.GetByID(newContractorID)
	if err != nil {
		return nil, err
	}
	if contractor == nil {
		return nil, domain.ErrNotFound
	}

	var order *entity.Order
	err = uc.tx.Run(ctx, func(l Ledger) error {
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
		if order.ContractorID == newContractorID {
			return domain.ErrInvalidInput
		}
		if err := l.Reassignments.Create(&entity.Reassignment{
			ID:              uuid.New().String(),
			OrderID:         orderID,
			OldContractorID: order.ContractorID,
			NewContractorID: newContractorID,
			Reason:          reason,
			Date:            uc.now(),
		}); err != nil {
			return err
		}
		order.ContractorID = newContractorID
		order.UpdatedAt = uc.now()
		return l.Orders.Save(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
