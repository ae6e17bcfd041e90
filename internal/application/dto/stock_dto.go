package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
)

// CreateStockItemRequest body for POST /api/stock-items.
type CreateStockItemRequest struct {
	Type       string          `json:"type"`
	Quality    string          `json:"quality"`
	ColorShade string          `json:"color_shade"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
}

// UpdateStockItemRequest body for PUT /api/stock-items/:id. AddQuantityKg
// tops up the on-hand weight; PricePerKg sets the current price without
// touching historical transactions. Either or both may be set.
type UpdateStockItemRequest struct {
	AddQuantityKg *decimal.Decimal `json:"add_quantity_kg"`
	PricePerKg    *decimal.Decimal `json:"price_per_kg"`
}

// StockItemResponse is one stock item.
type StockItemResponse struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Quality    string          `json:"quality"`
	ColorShade string          `json:"color_shade"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// StockItemFromEntity maps a stock item to its response shape.
func StockItemFromEntity(item *entity.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:         item.ID,
		Type:       item.Type,
		Quality:    item.Quality,
		ColorShade: item.ColorShade,
		PricePerKg: item.PricePerKg,
		QuantityKg: item.QuantityKg,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

// StockItemsFromEntities maps a listing.
func StockItemsFromEntities(items []*entity.StockItem) []StockItemResponse {
	out := make([]StockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, StockItemFromEntity(item))
	}
	return out
}
