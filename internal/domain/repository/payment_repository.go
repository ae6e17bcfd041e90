package repository

import "github.com/mirzacarpets/ledger-api/internal/domain/entity"

// PaymentRepository is the persistence port for payments.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	ListByOrder(orderID string) ([]*entity.Payment, error)
	ListByContractor(contractorID string) ([]*entity.Payment, error)
	Save(payment *entity.Payment) error
	Delete(id string) error
}
