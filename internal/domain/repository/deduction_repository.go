package repository

import "github.com/mirzacarpets/ledger-api/internal/domain/entity"

// DeductionRepository is the persistence port for completion deductions.
type DeductionRepository interface {
	Create(deduction *entity.Deduction) error
	ListByOrder(orderID string) ([]*entity.Deduction, error)
	ListByContractor(contractorID string) ([]*entity.Deduction, error)
}
