package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mirzacarpets/ledger-api/internal/domain"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements the PaymentRepository port on PostgreSQL (usable
// with pool or tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the persistence adapter for payments.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, contractor_id, order_id, amount, date, notes`

// Create persists a payment. General payments store an empty order_id.
func (r *PaymentRepo) Create(p *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ContractorID, p.OrderID, p.Amount, p.Date, p.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID fetches one payment, nil when absent.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `
		SELECT id, contractor_id, COALESCE(order_id, ''), amount, date, notes
		FROM payments WHERE id = $1`
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ContractorID, &p.OrderID, &p.Amount, &p.Date, &p.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// ListByOrder returns payments against one order.
func (r *PaymentRepo) ListByOrder(orderID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, contractor_id, COALESCE(order_id, ''), amount, date, notes
		FROM payments WHERE order_id = $1
		ORDER BY date, id`
	return r.list(query, orderID)
}

// ListByContractor returns all the contractor's payments, general included.
func (r *PaymentRepo) ListByContractor(contractorID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, contractor_id, COALESCE(order_id, ''), amount, date, notes
		FROM payments WHERE contractor_id = $1
		ORDER BY date, id`
	return r.list(query, contractorID)
}

// Save persists amount, date and notes edits.
func (r *PaymentRepo) Save(p *entity.Payment) error {
	query := `
		UPDATE payments SET amount = $2, date = $3, notes = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, p.ID, p.Amount, p.Date, p.Notes)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a payment row.
func (r *PaymentRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PaymentRepo) list(query string, arg any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.ContractorID, &p.OrderID, &p.Amount, &p.Date, &p.Notes); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
