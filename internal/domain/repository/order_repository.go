package repository

import "github.com/mirzacarpets/ledger-api/internal/domain/entity"

// OrderFilter narrows order listings. Status is an exact (case-insensitive)
// match; the rest are substring matches, AND-combined.
type OrderFilter struct {
	Status       string
	DesignNumber string
	ShadeCard    string
	Quality      string
}

// OrderRepository is the persistence port for orders.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate locks the order row so a completion and a concurrent
	// issue cannot interleave.
	GetForUpdate(id string) (*entity.Order, error)
	Save(order *entity.Order) error
	List(filter OrderFilter) ([]*entity.Order, error)
	ListByContractor(contractorID string) ([]*entity.Order, error)
}
