// Package stock manages the raw-material inventory: registering items,
// topping up quantities, repricing, and searching.
package stock

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/domain"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

// UseCase drives stock-item operations.
type UseCase struct {
	stock repository.StockItemRepository
	now   func() time.Time
}

// New builds the use case.
func New(stock repository.StockItemRepository) *UseCase {
	return &UseCase{stock: stock, now: time.Now}
}

// CreateInput registers a new stock item. Type and Quality are required;
// ColorShade is optional. An item with the same type, quality and shade
// already on the books is a duplicate: top up its quantity instead.
type CreateInput struct {
	Type       string
	Quality    string
	ColorShade string
	PricePerKg decimal.Decimal
	QuantityKg decimal.Decimal
}

// Create registers a stock item, rejecting exact (case-insensitive)
// type/quality/shade duplicates.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.StockItem, error) {
	if in.Type == "" || in.Quality == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.PricePerKg.GreaterThan(decimal.Zero) || in.QuantityKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.stock.Search(repository.StockItemFilter{
		Type:    in.Type,
		Quality: in.Quality,
	})
	if err != nil {
		return nil, err
	}
	for _, item := range existing {
		if strings.EqualFold(item.Type, in.Type) &&
			strings.EqualFold(item.Quality, in.Quality) &&
			strings.EqualFold(item.ColorShade, in.ColorShade) {
			return nil, domain.ErrDuplicate
		}
	}

	now := uc.now()
	item := &entity.StockItem{
		ID:         uuid.New().String(),
		Type:       in.Type,
		Quality:    in.Quality,
		ColorShade: in.ColorShade,
		PricePerKg: in.PricePerKg,
		QuantityKg: in.QuantityKg,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.stock.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns one stock item.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.StockItem, error) {
	item, err := uc.stock.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// Search returns items matching the filter; an empty filter lists everything.
func (uc *UseCase) Search(ctx context.Context, filter repository.StockItemFilter) ([]*entity.StockItem, error) {
	return uc.stock.Search(filter)
}

// AddQuantity credits purchased weight onto an existing item. It never
// touches the price: a purchase at a new rate is a reprice plus a top-up,
// and transactions already written keep their frozen prices either way.
func (uc *UseCase) AddQuantity(ctx context.Context, id string, weightKg decimal.Decimal) (*entity.StockItem, error) {
	if !weightKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.stock.GetForUpdate(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.QuantityKg = item.QuantityKg.Add(weightKg)
	item.UpdatedAt = uc.now()
	if err := uc.stock.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Reprice sets the item's current per-kg price. Only future issues see the
// new price.
func (uc *UseCase) Reprice(ctx context.Context, id string, pricePerKg decimal.Decimal) (*entity.StockItem, error) {
	if !pricePerKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.stock.GetForUpdate(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.PricePerKg = pricePerKg
	item.UpdatedAt = uc.now()
	if err := uc.stock.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}
