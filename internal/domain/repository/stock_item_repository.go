package repository

import "github.com/mirzacarpets/ledger-api/internal/domain/entity"

// StockItemFilter narrows stock queries. Each set field is a case-insensitive
// substring match; set fields are AND-combined.
type StockItemFilter struct {
	Type       string
	Quality    string
	ColorShade string
}

// StockItemRepository is the persistence port for raw-material stock.
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	// GetForUpdate locks the row for the current transaction so concurrent
	// issues cannot both pass the availability check.
	GetForUpdate(id string) (*entity.StockItem, error)
	// Save persists quantity and price changes.
	Save(item *entity.StockItem) error
	Search(filter StockItemFilter) ([]*entity.StockItem, error)
}
