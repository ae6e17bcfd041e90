package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/domain/dimension"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

// IssueLine is one stock issuance inside an order creation.
type IssueLine struct {
	StockID  string          `json:"stock_id"`
	WeightKg decimal.Decimal `json:"weight_kg"`
}

// CreateOrderRequest body for POST /api/orders. Wage zero or absent derives
// the wage from length x width x price_per_sq_ft. Issues are committed
// atomically with the order.
type CreateOrderRequest struct {
	ContractorID  string              `json:"contractor_id"`
	Quality       string              `json:"quality"`
	DesignNumber  string              `json:"design_number"`
	ShadeCard     string              `json:"shade_card"`
	Length        dimension.Dimension `json:"length"`
	Width         dimension.Dimension `json:"width"`
	PricePerSqFt  decimal.Decimal     `json:"price_per_sq_ft"`
	PenaltyPerDay decimal.Decimal     `json:"penalty_per_day"`
	Wage          decimal.Decimal     `json:"wage"`
	DateIssued    time.Time           `json:"date_issued"`
	DateDue       *time.Time          `json:"date_due"`
	Notes         string              `json:"notes"`
	Issues        []IssueLine         `json:"issues"`
}

// UpdateOrderRequest body for PUT /api/orders/:id; nil fields are unchanged.
type UpdateOrderRequest struct {
	DateDue *time.Time `json:"date_due"`
	Notes   *string    `json:"notes"`
}

// IssueStockRequest body for POST /api/orders/:id/issue-stock.
type IssueStockRequest struct {
	StockID  string          `json:"stock_id"`
	WeightKg decimal.Decimal `json:"weight_kg"`
	Date     time.Time       `json:"date"`
	Notes    string          `json:"notes"`
}

// ReconciliationLine settles one stock position at completion.
type ReconciliationLine struct {
	StockID    string          `json:"stock_id"`
	ReturnedKg decimal.Decimal `json:"returned_kg"`
	KeptKg     decimal.Decimal `json:"kept_kg"`
}

// DeductionLine is one completion-time deduction.
type DeductionLine struct {
	Reason string          `json:"reason"`
	Amount decimal.Decimal `json:"amount"`
}

// CompleteOrderRequest body for POST /api/orders/:id/complete. Nil final
// fields keep the order's current values; final dimensions or rate without a
// final wage recompute the wage.
type CompleteOrderRequest struct {
	DateCompleted     time.Time            `json:"date_completed"`
	FinalWage         *decimal.Decimal     `json:"final_wage"`
	FinalLength       *dimension.Dimension `json:"final_length"`
	FinalWidth        *dimension.Dimension `json:"final_width"`
	FinalPricePerSqFt *decimal.Decimal     `json:"final_price_per_sq_ft"`
	Reconciliation    []ReconciliationLine `json:"reconciliation"`
	Deductions        []DeductionLine      `json:"deductions"`
}

// ReassignOrderRequest body for POST /api/orders/:id/reassign.
type ReassignOrderRequest struct {
	NewContractorID string `json:"new_contractor_id"`
	Reason          string `json:"reason"`
}

// ReturnStockRequest body for POST /api/orders/:id/return-stock.
type ReturnStockRequest struct {
	StockID  string          `json:"stock_id"`
	WeightKg decimal.Decimal `json:"weight_kg"`
	Date     time.Time       `json:"date"`
}

// UpdateTransactionRequest body for PUT /api/transactions/:id. A zero date
// keeps the stored one.
type UpdateTransactionRequest struct {
	WeightKg decimal.Decimal `json:"weight_kg"`
	Date     time.Time       `json:"date"`
}

// OrderResponse is one order.
type OrderResponse struct {
	ID            string              `json:"id"`
	ContractorID  string              `json:"contractor_id"`
	Quality       string              `json:"quality"`
	DesignNumber  string              `json:"design_number"`
	ShadeCard     string              `json:"shade_card"`
	Length        dimension.Dimension `json:"length"`
	Width         dimension.Dimension `json:"width"`
	AreaSqFt      decimal.Decimal     `json:"area_sq_ft"`
	PricePerSqFt  decimal.Decimal     `json:"price_per_sq_ft"`
	Wage          decimal.Decimal     `json:"wage"`
	PenaltyPerDay decimal.Decimal     `json:"penalty_per_day"`
	DateIssued    time.Time           `json:"date_issued"`
	DateDue       *time.Time          `json:"date_due"`
	DateCompleted *time.Time          `json:"date_completed"`
	Status        string              `json:"status"`
	Notes         string              `json:"notes"`
}

// OrderFromEntity maps an order to its response shape.
func OrderFromEntity(o *entity.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		ContractorID:  o.ContractorID,
		Quality:       o.Quality,
		DesignNumber:  o.DesignNumber,
		ShadeCard:     o.ShadeCard,
		Length:        o.Length,
		Width:         o.Width,
		AreaSqFt:      o.AreaSqFt(),
		PricePerSqFt:  o.PricePerSqFt,
		Wage:          o.Wage,
		PenaltyPerDay: o.PenaltyPerDay,
		DateIssued:    o.DateIssued,
		DateDue:       o.DateDue,
		DateCompleted: o.DateCompleted,
		Status:        o.Status,
		Notes:         o.Notes,
	}
}

// OrdersFromEntities maps a listing.
func OrdersFromEntities(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderFromEntity(o))
	}
	return out
}

// TransactionResponse is one stock movement with its stock description.
type TransactionResponse struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	StockID    string          `json:"stock_id"`
	Type       string          `json:"type"`
	WeightKg   decimal.Decimal `json:"weight_kg"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
	Value      decimal.Decimal `json:"value"`
	Date       time.Time       `json:"date"`
	Notes      string          `json:"notes"`
	StockType  string          `json:"stock_type,omitempty"`
	Quality    string          `json:"stock_quality,omitempty"`
	ColorShade string          `json:"stock_color_shade,omitempty"`
}

// TransactionFromEntity maps a bare transaction.
func TransactionFromEntity(t *entity.StockTransaction) TransactionResponse {
	return TransactionResponse{
		ID:         t.ID,
		OrderID:    t.OrderID,
		StockID:    t.StockID,
		Type:       t.Type,
		WeightKg:   t.WeightKg,
		PricePerKg: t.PricePerKg,
		Value:      t.Value(),
		Date:       t.Date,
		Notes:      t.Notes,
	}
}

// TransactionsFromDetailed maps joined transactions.
func TransactionsFromDetailed(txns []*repository.DetailedTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, d := range txns {
		r := TransactionFromEntity(&d.StockTransaction)
		r.StockType = d.StockType
		r.Quality = d.StockQuality
		r.ColorShade = d.StockColorShade
		out = append(out, r)
	}
	return out
}

// ReassignmentResponse is one audit entry of an order changing hands.
type ReassignmentResponse struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id"`
	OldContractorID string    `json:"old_contractor_id"`
	NewContractorID string    `json:"new_contractor_id"`
	Reason          string    `json:"reason"`
	Date            time.Time `json:"date"`
}

// ReassignmentsFromEntities maps the audit trail.
func ReassignmentsFromEntities(rs []*entity.Reassignment) []ReassignmentResponse {
	out := make([]ReassignmentResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, ReassignmentResponse{
			ID:              r.ID,
			OrderID:         r.OrderID,
			OldContractorID: r.OldContractorID,
			NewContractorID: r.NewContractorID,
			Reason:          r.Reason,
			Date:            r.Date,
		})
	}
	return out
}
