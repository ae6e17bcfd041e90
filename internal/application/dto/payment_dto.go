package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
)

// RecordPaymentRequest body for POST /api/payments. OrderID empty records a
// general contractor-level payment; when set, the contractor is taken from
// the order and ContractorID may be omitted.
type RecordPaymentRequest struct {
	ContractorID string          `json:"contractor_id"`
	OrderID      string          `json:"order_id"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Notes        string          `json:"notes"`
}

// UpdatePaymentRequest body for PUT /api/payments/:id.
type UpdatePaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Notes  string          `json:"notes"`
}

// PaymentResponse is one payment.
type PaymentResponse struct {
	ID           string          `json:"id"`
	ContractorID string          `json:"contractor_id"`
	OrderID      string          `json:"order_id,omitempty"`
	General      bool            `json:"general"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Notes        string          `json:"notes"`
}

// PaymentFromEntity maps a payment to its response shape.
func PaymentFromEntity(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		ContractorID: p.ContractorID,
		OrderID:      p.OrderID,
		General:      p.IsGeneral(),
		Amount:       p.Amount,
		Date:         p.Date,
		Notes:        p.Notes,
	}
}

// PaymentsFromEntities maps a listing.
func PaymentsFromEntities(items []*entity.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(items))
	for _, p := range items {
		out = append(out, PaymentFromEntity(p))
	}
	return out
}
