package repository

import "github.com/mirzacarpets/ledger-api/internal/domain/entity"

// ContractorRepository is the persistence port for contractors. There is no
// Delete: history references contractors by id.
type ContractorRepository interface {
	Create(contractor *entity.Contractor) error
	GetByID(id string) (*entity.Contractor, error)
	List() ([]*entity.Contractor, error)
}
