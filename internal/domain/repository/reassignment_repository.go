package repository

import "github.com/mirzacarpets/ledger-api/internal/domain/entity"

// ReassignmentRepository is the persistence port for the reassignment audit log.
type ReassignmentRepository interface {
	Create(reassignment *entity.Reassignment) error
	ListByOrder(orderID string) ([]*entity.Reassignment, error)
}
