package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/application/contractors"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/finance"
	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

// CreateContractorRequest body for POST /api/contractors.
type CreateContractorRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

// ContractorResponse is one contractor.
type ContractorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContractorFromEntity maps a contractor to its response shape.
func ContractorFromEntity(c *entity.Contractor) ContractorResponse {
	return ContractorResponse{
		ID:          c.ID,
		Name:        c.Name,
		ContactInfo: c.ContactInfo,
		CreatedAt:   c.CreatedAt,
	}
}

// OrderWithSummaryResponse is one order inside the contractor ledger view.
type OrderWithSummaryResponse struct {
	Order   OrderResponse   `json:"order"`
	Summary finance.Summary `json:"summary"`
}

// HeldStockLineResponse is one net stock position held by a contractor.
type HeldStockLineResponse struct {
	StockID     string          `json:"stock_id"`
	Description string          `json:"description"`
	NetWeightKg decimal.Decimal `json:"net_weight_kg"`
}

// IssuedTotalResponse is the ever-issued weight for one contractor/stock pair.
type IssuedTotalResponse struct {
	ContractorID   string          `json:"contractor_id"`
	ContractorName string          `json:"contractor_name"`
	StockID        string          `json:"stock_id"`
	StockType      string          `json:"stock_type"`
	StockQuality   string          `json:"stock_quality"`
	ColorShade     string          `json:"color_shade"`
	TotalIssuedKg  decimal.Decimal `json:"total_issued_kg"`
}

// IssuedTotalFromRepo maps an aggregated issue-history row.
func IssuedTotalFromRepo(t *repository.IssuedTotal) IssuedTotalResponse {
	return IssuedTotalResponse{
		ContractorID:   t.ContractorID,
		ContractorName: t.ContractorName,
		StockID:        t.StockID,
		StockType:      t.StockType,
		StockQuality:   t.StockQuality,
		ColorShade:     t.StockColorShade,
		TotalIssuedKg:  t.TotalIssuedKg,
	}
}

// ContractorDetailsResponse is the full ledger view of one contractor.
type ContractorDetailsResponse struct {
	Contractor   ContractorResponse         `json:"contractor"`
	Orders       []OrderWithSummaryResponse `json:"orders"`
	Payments     []PaymentResponse          `json:"payments"`
	HeldStock    []HeldStockLineResponse    `json:"held_stock"`
	IssueHistory []IssuedTotalResponse      `json:"issue_history"`
	Totals       finance.LedgerTotals       `json:"totals"`
	ByQuality    []finance.QualityTotals    `json:"by_quality"`
}

// ContractorDetails maps the assembled ledger view.
func ContractorDetails(d *contractors.Details) ContractorDetailsResponse {
	out := ContractorDetailsResponse{
		Contractor:   ContractorFromEntity(&d.Contractor),
		Orders:       make([]OrderWithSummaryResponse, 0, len(d.Orders)),
		Payments:     make([]PaymentResponse, 0, len(d.Payments)),
		HeldStock:    make([]HeldStockLineResponse, 0, len(d.HeldStock)),
		IssueHistory: make([]IssuedTotalResponse, 0, len(d.IssueHistory)),
		Totals:       d.Totals,
		ByQuality:    d.ByQuality,
	}
	for i := range d.Orders {
		out.Orders = append(out.Orders, OrderWithSummaryResponse{
			Order:   OrderFromEntity(&d.Orders[i].Order),
			Summary: d.Orders[i].Summary,
		})
	}
	for i := range d.Payments {
		out.Payments = append(out.Payments, PaymentFromEntity(&d.Payments[i]))
	}
	for _, h := range d.HeldStock {
		out.HeldStock = append(out.HeldStock, HeldStockLineResponse(h))
	}
	for _, t := range d.IssueHistory {
		out.IssueHistory = append(out.IssueHistory, IssuedTotalFromRepo(t))
	}
	return out
}
