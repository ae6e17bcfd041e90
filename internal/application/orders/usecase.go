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
	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

// UseCase drives the order lifecycle: creation with initial stock issues,
// further issuance, completion with reconciliation, reassignment, and the
// financial summary. Compound operations go through the TxRunner so either
// every sub-step commits or none do.
type UseCase struct {
	tx          TxRunner
	orders      repository.OrderRepository
	stock       repository.StockItemRepository
	txns        repository.StockTransactionRepository
	payments    repository.PaymentRepository
	deductions  repository.DeductionRepository
	reassigns   repository.ReassignmentRepository
	contractors repository.ContractorRepository

	// now anchors fine previews for open orders; overridable in tests.
	now func() time.Time
}

// New builds the use case.
func New(
	tx TxRunner,
	orders repository.OrderRepository,
	stock repository.StockItemRepository,
	txns repository.StockTransactionRepository,
	payments repository.PaymentRepository,
	deductions repository.DeductionRepository,
	reassigns repository.ReassignmentRepository,
	contractors repository.ContractorRepository,
) *UseCase {
	return &UseCase{
		tx:          tx,
		orders:      orders,
		stock:       stock,
		txns:        txns,
		payments:    payments,
		deductions:  deductions,
		reassigns:   reassigns,
		contractors: contractors,
		now:         time.Now,
	}
}

// InitialIssue is one stock line issued at order creation.
type InitialIssue struct {
	StockID  string
	WeightKg decimal.Decimal
}

// CreateInput is the single atomic creation call: the order plus its initial
// issues commit together or not at all.
type CreateInput struct {
	ContractorID  string
	Quality       string
	DesignNumber  string
	ShadeCard     string
	Length        dimension.Dimension
	Width         dimension.Dimension
	PricePerSqFt  decimal.Decimal
	PenaltyPerDay decimal.Decimal
	Wage          decimal.Decimal // optional override; zero means derive from area
	DateIssued    time.Time
	DateDue       *time.Time
	Notes         string
	Issues        []InitialIssue
}

// Create validates, derives the wage when no override is given, and commits
// the order together with every initial issuance.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Order, error) {
	if in.ContractorID == "" || in.DesignNumber == "" || in.DateIssued.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if err := in.Length.Validate(); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if err := in.Width.Validate(); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.PricePerSqFt.IsNegative() || in.PenaltyPerDay.IsNegative() || in.Wage.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, iss := range in.Issues {
		if iss.StockID == "" || !iss.WeightKg.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	contractor, err := uc.contractors.GetByID(in.ContractorID)
	if err != nil {
		return nil, err
	}
	if contractor == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		ContractorID:  in.ContractorID,
		Quality:       in.Quality,
		DesignNumber:  in.DesignNumber,
		ShadeCard:     in.ShadeCard,
		Length:        in.Length,
		Width:         in.Width,
		PricePerSqFt:  in.PricePerSqFt,
		PenaltyPerDay: in.PenaltyPerDay,
		Wage:          in.Wage,
		DateIssued:    in.DateIssued,
		DateDue:       in.DateDue,
		Status:        entity.OrderStatusOpen,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if order.Wage.IsZero() {
		order.Wage = order.ComputedWage()
	}

	err = uc.tx.Run(ctx, func(l Ledger) error {
		if err := l.Orders.Create(order); err != nil {
			return err
		}
		for _, iss := range in.Issues {
			if _, err := issueLocked(l, order, iss.StockID, iss.WeightKg, in.DateIssued, ""); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// IssueStock appends an Issued transaction to an open order, decrementing
// inventory atomically with the log insert.
func (uc *UseCase) IssueStock(ctx context.Context, orderID, stockID string, weightKg decimal.Decimal, date time.Time, notes string) (*entity.StockTransaction, error) {
	if !weightKg.GreaterThan(decimal.Zero) {
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
		if !order.IsOpen() {
			return domain.ErrInvalidState
		}
		created, err = issueLocked(l, order, stockID, weightKg, date, notes)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// issueLocked decrements a locked stock row and records the Issued
// transaction at the item's current price, which becomes that transaction's
// frozen price forever.
func issueLocked(l Ledger, order *entity.Order, stockID string, weightKg decimal.Decimal, date time.Time, notes string) (*entity.StockTransaction, error) {
	item, err := l.Stock.GetForUpdate(stockID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.QuantityKg.LessThan(weightKg) {
		return nil, &domain.InsufficientStockError{
			StockID:     stockID,
			RequestedKg: weightKg,
			AvailableKg: item.QuantityKg,
		}
	}
	item.QuantityKg = item.QuantityKg.Sub(weightKg)
	if err := l.Stock.Save(item); err != nil {
		return nil, err
	}
	txn := &entity.StockTransaction{
		ID:         uuid.New().String(),
		OrderID:    order.ID,
		StockID:    stockID,
		Type:       entity.TxnIssued,
		WeightKg:   weightKg,
		PricePerKg: item.PricePerKg,
		Date:       date,
		Notes:      notes,
	}
	if err := l.Transactions.Create(txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// Get returns one order.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Order, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List returns orders matching the filter.
func (uc *UseCase) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	return uc.orders.List(filter)
}

// Transactions returns the order's movement log with stock descriptions.
func (uc *UseCase) Transactions(ctx context.Context, orderID string) ([]*repository.DetailedTransaction, error) {
	if _, err := uc.Get(ctx, orderID); err != nil {
		return nil, err
	}
	return uc.txns.ListDetailedByOrder(orderID)
}

// Payments returns payments recorded against the order.
func (uc *UseCase) Payments(ctx context.Context, orderID string) ([]*entity.Payment, error) {
	if _, err := uc.Get(ctx, orderID); err != nil {
		return nil, err
	}
	return uc.payments.ListByOrder(orderID)
}

// Reassignments returns the order's reassignment audit trail.
func (uc *UseCase) Reassignments(ctx context.Context, orderID string) ([]*entity.Reassignment, error) {
	return uc.reassigns.ListByOrder(orderID)
}

// UpdateInput carries the only fields editable on an open order outside the
// lifecycle transitions.
type UpdateInput struct {
	DateDue *time.Time
	Notes   *string
}

// Update edits due date and notes while the order is Open.
func (uc *UseCase) Update(ctx context.Context, orderID string, in UpdateInput) (*entity.Order, error) {
	order, err := uc.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsOpen() {
		return nil, domain.ErrInvalidState
	}
	if in.DateDue != nil {
		order.DateDue = in.DateDue
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	order.UpdatedAt = uc.now()
	if err := uc.orders.Save(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Financials computes the order's financial summary: a pure function of the
// persisted state, so repeated calls without writes return identical results.
func (uc *UseCase) Financials(ctx context.Context, orderID string) (finance.Summary, error) {
	ledger, err := uc.loadLedger(orderID)
	if err != nil {
		return finance.Summary{}, err
	}
	return ledger.Summarize(uc.now()), nil
}

func (uc *UseCase) loadLedger(orderID string) (finance.OrderLedger, error) {
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return finance.OrderLedger{}, err
	}
	if order == nil {
		return finance.OrderLedger{}, domain.ErrNotFound
	}
	txns, err := uc.txns.ListByOrder(orderID)
	if err != nil {
		return finance.OrderLedger{}, err
	}
	payments, err := uc.payments.ListByOrder(orderID)
	if err != nil {
		return finance.OrderLedger{}, err
	}
	deductions, err := uc.deductions.ListByOrder(orderID)
	if err != nil {
		return finance.OrderLedger{}, err
	}
	return finance.OrderLedger{
		Order:        *order,
		Transactions: deref(txns),
		Payments:     deref(payments),
		Deductions:   deref(deductions),
	}, nil
}

func deref[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, *v)
	}
	return out
}
