// Package payments records money paid to contractors, either against one
// order or as a general contractor-level payment.
package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/domain"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

// UseCase drives payment operations.
type UseCase struct {
	payments    repository.PaymentRepository
	orders      repository.OrderRepository
	contractors repository.ContractorRepository
}

// New builds the use case.
func New(
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
	contractors repository.ContractorRepository,
) *UseCase {
	return &UseCase{payments: payments, orders: orders, contractors: contractors}
}

// RecordInput is one payment. OrderID empty records a general payment, which
// is ignored by per-order pending amounts and netted only in the contractor
// summary. When OrderID is set the contractor is taken from the order.
type RecordInput struct {
	ContractorID string
	OrderID      string
	Amount       decimal.Decimal
	Date         time.Time
	Notes        string
}

// Record validates and stores a payment. Payments against closed orders are
// allowed: settling the balance after completion is the normal flow.
func (uc *UseCase) Record(ctx context.Context, in RecordInput) (*entity.Payment, error) {
	if !in.Amount.GreaterThan(decimal.Zero) || in.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	contractorID := in.ContractorID
	if in.OrderID != "" {
		order, err := uc.orders.GetByID(in.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, domain.ErrNotFound
		}
		contractorID = order.ContractorID
	}
	if contractorID == "" {
		return nil, domain.ErrInvalidInput
	}
	contractor, err := uc.contractors.GetByID(contractorID)
	if err != nil {
		return nil, err
	}
	if contractor == nil {
		return nil, domain.ErrNotFound
	}

	payment := &entity.Payment{
		ID:           uuid.New().String(),
		ContractorID: contractorID,
		OrderID:      in.OrderID,
		Amount:       in.Amount,
		Date:         in.Date,
		Notes:        in.Notes,
	}
	if err := uc.payments.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Get returns one payment.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Payment, error) {
	payment, err := uc.payments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return payment, nil
}

// Update edits a payment's amount, date and notes. A payment against a
// closed order is settled history and cannot be edited.
func (uc *UseCase) Update(ctx context.Context, id string, amount decimal.Decimal, date time.Time, notes string) (*entity.Payment, error) {
	if !amount.GreaterThan(decimal.Zero) || date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	payment, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.requireEditable(payment); err != nil {
		return nil, err
	}
	payment.Amount = amount
	payment.Date = date
	payment.Notes = notes
	if err := uc.payments.Save(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Delete removes a payment, under the same open-order restriction as Update.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	payment, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.requireEditable(payment); err != nil {
		return err
	}
	return uc.payments.Delete(id)
}

func (uc *UseCase) requireEditable(p *entity.Payment) error {
	if p.IsGeneral() {
		return nil
	}
	order, err := uc.orders.GetByID(p.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if !order.IsOpen() {
		return domain.ErrInvalidState
	}
	return nil
}
