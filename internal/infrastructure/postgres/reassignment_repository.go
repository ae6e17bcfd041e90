package postgres

import (
	"context"
	"fmt"

	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

var _ repository.ReassignmentRepository = (*ReassignmentRepo)(nil)

// ReassignmentRepo implements the ReassignmentRepository port on PostgreSQL
// (usable with pool or tx).
type ReassignmentRepo struct {
	q Querier
}

// NewReassignmentRepository builds the persistence adapter for the
// reassignment audit log.
func NewReassignmentRepository(q Querier) *ReassignmentRepo {
	return &ReassignmentRepo{q: q}
}

// Create persists an audit entry.
func (r *ReassignmentRepo) Create(a *entity.Reassignment) error {
	query := `
		INSERT INTO order_reassignments (id, order_id, old_contractor_id, new_contractor_id, reason, date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.OrderID, a.OldContractorID, a.NewContractorID, a.Reason, a.Date,
	)
	if err != nil {
		return fmt.Errorf("insert reassignment: %w", err)
	}
	return nil
}

// ListByOrder returns the order's reassignment history, oldest first.
func (r *ReassignmentRepo) ListByOrder(orderID string) ([]*entity.Reassignment, error) {
	query := `
		SELECT id, order_id, old_contractor_id, new_contractor_id, reason, date
		FROM order_reassignments WHERE order_id = $1 ORDER BY date, id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list reassignments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Reassignment
	for rows.Next() {
		var a entity.Reassignment
		if err := rows.Scan(&a.ID, &a.OrderID, &a.OldContractorID, &a.NewContractorID, &a.Reason, &a.Date); err != nil {
			return nil, fmt.Errorf("scan reassignment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
