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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implements the OrderRepository port on PostgreSQL (usable with
// pool or tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the persistence adapter for orders.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, contractor_id, quality, design_number, shade_card,
	length_feet, length_inches, width_feet, width_inches,
	price_per_sq_ft, wage, penalty_per_day,
	date_issued, date_due, date_completed, status, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.ContractorID, &o.Quality, &o.DesignNumber, &o.ShadeCard,
		&o.Length.Feet, &o.Length.Inches, &o.Width.Feet, &o.Width.Inches,
		&o.PricePerSqFt, &o.Wage, &o.PenaltyPerDay,
		&o.DateIssued, &o.DateDue, &o.DateCompleted, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// Create persists a new order.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.ContractorID, o.Quality, o.DesignNumber, o.ShadeCard,
		o.Length.Feet, o.Length.Inches, o.Width.Feet, o.Width.Inches,
		o.PricePerSqFt, o.Wage, o.PenaltyPerDay,
		o.DateIssued, o.DateDue, o.DateCompleted, o.Status, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID fetches one order, nil when absent.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetForUpdate locks the order row for the current transaction.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("lock order: %w", err)
	}
	return o, nil
}

// Save persists every mutable order field.
func (r *OrderRepo) Save(o *entity.Order) error {
	query := `
		UPDATE orders
		SET contractor_id = $2, quality = $3, design_number = $4, shade_card = $5,
		    length_feet = $6, length_inches = $7, width_feet = $8, width_inches = $9,
		    price_per_sq_ft = $10, wage = $11, penalty_per_day = $12,
		    date_issued = $13, date_due = $14, date_completed = $15,
		    status = $16, notes = $17, updated_at = $18
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		o.ID, o.ContractorID, o.Quality, o.DesignNumber, o.ShadeCard,
		o.Length.Feet, o.Length.Inches, o.Width.Feet, o.Width.Inches,
		o.PricePerSqFt, o.Wage, o.PenaltyPerDay,
		o.DateIssued, o.DateDue, o.DateCompleted, o.Status, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filters orders: exact case-insensitive status plus substring matches.
func (r *OrderRepo) List(f repository.OrderFilter) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR status ILIKE $1)
		  AND ($2 = '' OR design_number ILIKE $3)
		  AND ($4 = '' OR shade_card ILIKE $5)
		  AND ($6 = '' OR quality ILIKE $7)
		ORDER BY date_issued DESC, id`
	rows, err := r.q.Query(context.Background(), query,
		f.Status, f.DesignNumber, like(f.DesignNumber), f.ShadeCard, like(f.ShadeCard), f.Quality, like(f.Quality),
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListByContractor returns the contractor's orders, newest first.
func (r *OrderRepo) ListByContractor(contractorID string) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders WHERE contractor_id = $1
		ORDER BY date_issued DESC, id`
	rows, err := r.q.Query(context.Background(), query, contractorID)
	if err != nil {
		return nil, fmt.Errorf("list contractor orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]*entity.Order, error) {
	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
