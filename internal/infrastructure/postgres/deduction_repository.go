package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

var _ repository.DeductionRepository = (*DeductionRepo)(nil)

// DeductionRepo implements the DeductionRepository port on PostgreSQL (usable
// with pool or tx).
type DeductionRepo struct {
	q Querier
}

// NewDeductionRepository builds the persistence adapter for deductions.
func NewDeductionRepository(q Querier) *DeductionRepo {
	return &DeductionRepo{q: q}
}

// Create persists a deduction.
func (r *DeductionRepo) Create(d *entity.Deduction) error {
	query := `
		INSERT INTO deductions (id, order_id, reason, amount)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, d.ID, d.OrderID, d.Reason, d.Amount)
	if err != nil {
		return fmt.Errorf("insert deduction: %w", err)
	}
	return nil
}

// ListByOrder returns the order's deductions.
func (r *DeductionRepo) ListByOrder(orderID string) ([]*entity.Deduction, error) {
	query := `
		SELECT id, order_id, reason, amount
		FROM deductions WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order deductions: %w", err)
	}
	defer rows.Close()
	return collectDeductions(rows)
}

// ListByContractor returns deductions across every order of one contractor.
func (r *DeductionRepo) ListByContractor(contractorID string) ([]*entity.Deduction, error) {
	query := `
		SELECT d.id, d.order_id, d.reason, d.amount
		FROM deductions d
		JOIN orders o ON o.id = d.order_id
		WHERE o.contractor_id = $1 ORDER BY d.id`
	rows, err := r.q.Query(context.Background(), query, contractorID)
	if err != nil {
		return nil, fmt.Errorf("list contractor deductions: %w", err)
	}
	defer rows.Close()
	return collectDeductions(rows)
}

func collectDeductions(rows pgx.Rows) ([]*entity.Deduction, error) {
	var out []*entity.Deduction
	for rows.Next() {
		var d entity.Deduction
		if err := rows.Scan(&d.ID, &d.OrderID, &d.Reason, &d.Amount); err != nil {
			return nil, fmt.Errorf("scan deduction: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
