// Package contractors manages weavers and assembles their ledger views: all
// orders with financial summaries, payments, held stock and the rolled-up
// balance.
package contractors

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/domain"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/finance"
	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

// StatementGenerator renders a contractor's ledger view into a printable
// document.
type StatementGenerator interface {
	Statement(details *Details) ([]byte, error)
}

// UseCase drives contractor operations.
type UseCase struct {
	contractors repository.ContractorRepository
	orders      repository.OrderRepository
	txns        repository.StockTransactionRepository
	payments    repository.PaymentRepository
	deductions  repository.DeductionRepository
	statements  StatementGenerator

	now func() time.Time
}

// New builds the use case. statements may be nil when no document output is
// wired.
func New(
	contractors repository.ContractorRepository,
	orders repository.OrderRepository,
	txns repository.StockTransactionRepository,
	payments repository.PaymentRepository,
	deductions repository.DeductionRepository,
	statements StatementGenerator,
) *UseCase {
	return &UseCase{
		contractors: contractors,
		orders:      orders,
		txns:        txns,
		payments:    payments,
		deductions:  deductions,
		statements:  statements,
		now:         time.Now,
	}
}

// Create registers a contractor.
func (uc *UseCase) Create(ctx context.Context, name, contactInfo string) (*entity.Contractor, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	contractor := &entity.Contractor{
		ID:          uuid.New().String(),
		Name:        name,
		ContactInfo: contactInfo,
		CreatedAt:   uc.now(),
	}
	if err := uc.contractors.Create(contractor); err != nil {
		return nil, err
	}
	return contractor, nil
}

// Get returns one contractor.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Contractor, error) {
	contractor, err := uc.contractors.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contractor == nil {
		return nil, domain.ErrNotFound
	}
	return contractor, nil
}

// List returns all contractors.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Contractor, error) {
	return uc.contractors.List()
}

// OrderView pairs an order with its computed financial summary.
type OrderView struct {
	Order   entity.Order    `json:"order"`
	Summary finance.Summary `json:"summary"`
}

// HeldStockLine is one net stock position currently out with the contractor
// on open orders.
type HeldStockLine struct {
	StockID     string          `json:"stock_id"`
	Description string          `json:"description"`
	NetWeightKg decimal.Decimal `json:"net_weight_kg"`
}

// Details is the full ledger view of one contractor.
type Details struct {
	Contractor   entity.Contractor         `json:"contractor"`
	Orders       []OrderView               `json:"orders"`
	Payments     []entity.Payment          `json:"payments"`
	HeldStock    []HeldStockLine           `json:"held_stock"`
	IssueHistory []*repository.IssuedTotal `json:"issue_history"`
	Totals       finance.LedgerTotals      `json:"totals"`
	ByQuality    []finance.QualityTotals   `json:"by_quality"`
}

// Details assembles the contractor's complete ledger: every order with its
// summary, all payments, net held stock on open orders, and the contractor
// balance with per-quality buckets. General payments appear in Payments and
// reduce Totals.BalanceOwed but no individual order.
func (uc *UseCase) Details(ctx context.Context, id string) (*Details, error) {
	contractor, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := uc.orders.ListByContractor(id)
	if err != nil {
		return nil, err
	}
	allPayments, err := uc.payments.ListByContractor(id)
	if err != nil {
		return nil, err
	}

	ledgers := make([]finance.OrderLedger, 0, len(orders))
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		ledger, err := uc.loadLedger(order)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, ledger)
	}

	today := uc.now()
	for _, ledger := range ledgers {
		views = append(views, OrderView{
			Order:   ledger.Order,
			Summary: ledger.Summarize(today),
		})
	}

	var general []entity.Payment
	payments := make([]entity.Payment, 0, len(allPayments))
	for _, p := range allPayments {
		payments = append(payments, *p)
		if p.IsGeneral() {
			general = append(general, *p)
		}
	}

	held, err := uc.heldStock(id)
	if err != nil {
		return nil, err
	}
	history, err := uc.txns.IssuedTotals(id)
	if err != nil {
		return nil, err
	}

	totals, byQuality := finance.SummarizeContractor(ledgers, general, today)
	return &Details{
		Contractor:   *contractor,
		Orders:       views,
		Payments:     payments,
		HeldStock:    held,
		IssueHistory: history,
		Totals:       totals,
		ByQuality:    byQuality,
	}, nil
}

// Statement renders the contractor's ledger view as a document.
func (uc *UseCase) Statement(ctx context.Context, id string) ([]byte, error) {
	if uc.statements == nil {
		return nil, domain.ErrInvalidState
	}
	details, err := uc.Details(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.statements.Statement(details)
}

func (uc *UseCase) loadLedger(order *entity.Order) (finance.OrderLedger, error) {
	txns, err := uc.txns.ListByOrder(order.ID)
	if err != nil {
		return finance.OrderLedger{}, err
	}
	deductions, err := uc.deductions.ListByOrder(order.ID)
	if err != nil {
		return finance.OrderLedger{}, err
	}
	// Payments are loaded per order, not from the contractor listing: an
	// order that was reassigned here keeps payments recorded under its old
	// contractor, and those still settle this order's pending amount.
	payments, err := uc.payments.ListByOrder(order.ID)
	if err != nil {
		return finance.OrderLedger{}, err
	}
	ledger := finance.OrderLedger{Order: *order}
	for _, t := range txns {
		ledger.Transactions = append(ledger.Transactions, *t)
	}
	for _, d := range deductions {
		ledger.Deductions = append(ledger.Deductions, *d)
	}
	for _, p := range payments {
		ledger.Payments = append(ledger.Payments, *p)
	}
	return ledger, nil
}

// heldStock nets the contractor's open-order transactions into per-stock
// positions above the noise floor.
func (uc *UseCase) heldStock(contractorID string) ([]HeldStockLine, error) {
	detailed, err := uc.txns.ListDetailedByContractor(contractorID)
	if err != nil {
		return nil, err
	}
	var open []entity.StockTransaction
	desc := make(map[string]string)
	for _, d := range detailed {
		if d.OrderStatus != entity.OrderStatusOpen {
			continue
		}
		open = append(open, d.StockTransaction)
		item := entity.StockItem{Type: d.StockType, Quality: d.StockQuality, ColorShade: d.StockColorShade}
		desc[d.StockID] = item.Description()
	}
	positions := finance.NetPositions(open)
	lines := make([]HeldStockLine, 0, len(positions))
	for _, pos := range positions {
		lines = append(lines, HeldStockLine{
			StockID:     pos.StockID,
			Description: desc[pos.StockID],
			NetWeightKg: pos.NetWeightKg,
		})
	}
	return lines, nil
}
