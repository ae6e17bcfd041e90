// Package reports builds the cross-contractor views: who holds which stock,
// total ever-issued weights, and the full-ledger spreadsheet export.
package reports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/domain"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/finance"
	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

// ExportData is everything the spreadsheet export writes, one sheet per slice.
type ExportData struct {
	Contractors  []*entity.Contractor
	StockItems   []*entity.StockItem
	Orders       []*entity.Order
	Transactions []*repository.DetailedTransaction
	Payments     []*entity.Payment
	Deductions   []*entity.Deduction
}

// Exporter renders the full ledger into a downloadable workbook.
type Exporter interface {
	Export(data *ExportData) ([]byte, error)
}

// UseCase drives the reporting queries.
type UseCase struct {
	contractors repository.ContractorRepository
	stock       repository.StockItemRepository
	orders      repository.OrderRepository
	txns        repository.StockTransactionRepository
	payments    repository.PaymentRepository
	deductions  repository.DeductionRepository
	exporter    Exporter
}

// New builds the use case. exporter may be nil when no export output is wired.
func New(
	contractors repository.ContractorRepository,
	stock repository.StockItemRepository,
	orders repository.OrderRepository,
	txns repository.StockTransactionRepository,
	payments repository.PaymentRepository,
	deductions repository.DeductionRepository,
	exporter Exporter,
) *UseCase {
	return &UseCase{
		contractors: contractors,
		stock:       stock,
		orders:      orders,
		txns:        txns,
		payments:    payments,
		deductions:  deductions,
		exporter:    exporter,
	}
}

// HeldStockLine is one contractor's net position in one stock, summed across
// their open orders.
type HeldStockLine struct {
	ContractorID   string          `json:"contractor_id"`
	ContractorName string          `json:"contractor_name"`
	StockID        string          `json:"stock_id"`
	Description    string          `json:"description"`
	NetWeightKg    decimal.Decimal `json:"net_weight_kg"`
}

// HeldStock reports which contractors currently hold which material: every
// open-order transaction netted per (contractor, stock), positions at or
// below the noise floor dropped. Closed orders contribute nothing, and
// reassigned orders count under their current contractor.
func (uc *UseCase) HeldStock(ctx context.Context) ([]HeldStockLine, error) {
	detailed, err := uc.txns.ListDetailedOpen()
	if err != nil {
		return nil, err
	}
	names, err := uc.contractorNames()
	if err != nil {
		return nil, err
	}

	type key struct{ contractorID, stockID string }
	net := make(map[key]decimal.Decimal)
	lines := make([]HeldStockLine, 0)
	index := make(map[key]int)
	for _, d := range detailed {
		k := key{d.ContractorID, d.StockID}
		if _, ok := index[k]; !ok {
			item := entity.StockItem{Type: d.StockType, Quality: d.StockQuality, ColorShade: d.StockColorShade}
			index[k] = len(lines)
			lines = append(lines, HeldStockLine{
				ContractorID:   d.ContractorID,
				ContractorName: names[d.ContractorID],
				StockID:        d.StockID,
				Description:    item.Description(),
			})
		}
		net[k] = net[k].Add(d.SignedWeight())
	}

	out := lines[:0]
	for _, line := range lines {
		k := key{line.ContractorID, line.StockID}
		if net[k].GreaterThan(finance.EpsilonKg) {
			line.NetWeightKg = net[k]
			out = append(out, line)
		}
	}
	return out, nil
}

// IssueHistory reports the total weight ever issued per contractor and stock,
// ignoring returns. contractorID empty covers all contractors.
func (uc *UseCase) IssueHistory(ctx context.Context, contractorID string) ([]*repository.IssuedTotal, error) {
	return uc.txns.IssuedTotals(contractorID)
}

// Export gathers the whole ledger and renders it as a workbook.
func (uc *UseCase) Export(ctx context.Context) ([]byte, error) {
	if uc.exporter == nil {
		return nil, domain.ErrInvalidState
	}
	contractors, err := uc.contractors.List()
	if err != nil {
		return nil, err
	}
	stock, err := uc.stock.Search(repository.StockItemFilter{})
	if err != nil {
		return nil, err
	}
	orders, err := uc.orders.List(repository.OrderFilter{})
	if err != nil {
		return nil, err
	}
	var txns []*repository.DetailedTransaction
	var payments []*entity.Payment
	var deductions []*entity.Deduction
	for _, c := range contractors {
		ct, err := uc.txns.ListDetailedByContractor(c.ID)
		if err != nil {
			return nil, err
		}
		txns = append(txns, ct...)
		cp, err := uc.payments.ListByContractor(c.ID)
		if err != nil {
			return nil, err
		}
		payments = append(payments, cp...)
		cd, err := uc.deductions.ListByContractor(c.ID)
		if err != nil {
			return nil, err
		}
		deductions = append(deductions, cd...)
	}
	return uc.exporter.Export(&ExportData{
		Contractors:  contractors,
		StockItems:   stock,
		Orders:       orders,
		Transactions: txns,
		Payments:     payments,
		Deductions:   deductions,
	})
}

func (uc *UseCase) contractorNames() (map[string]string, error) {
	all, err := uc.contractors.List()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, c := range all {
		names[c.ID] = c.Name
	}
	return names, nil
}
