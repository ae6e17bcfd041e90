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

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implements the StockTransactionRepository port on
// PostgreSQL (usable with pool or tx).
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository builds the persistence adapter for the
// transaction log.
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

const txnColumns = `id, order_id, stock_id, type, weight_kg, price_per_kg, date, notes`

// detailedQuery joins every transaction with its stock description and
// owning order, the shape ledger views and reports read.
const detailedQuery = `
	SELECT t.id, t.order_id, t.stock_id, t.type, t.weight_kg, t.price_per_kg, t.date, t.notes,
	       s.type, s.quality, s.color_shade, o.contractor_id, o.status
	FROM stock_transactions t
	JOIN stock_items s ON s.id = t.stock_id
	JOIN orders o ON o.id = t.order_id`

// Create persists a movement.
func (r *StockTransactionRepo) Create(t *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (` + txnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.OrderID, t.StockID, t.Type, t.WeightKg, t.PricePerKg, t.Date, t.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches one transaction, nil when absent.
func (r *StockTransactionRepo) GetByID(id string) (*entity.StockTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM stock_transactions WHERE id = $1`
	var t entity.StockTransaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.OrderID, &t.StockID, &t.Type, &t.WeightKg, &t.PricePerKg, &t.Date, &t.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// ListByOrder returns the order's movements in date order.
func (r *StockTransactionRepo) ListByOrder(orderID string) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + txnColumns + `
		FROM stock_transactions WHERE order_id = $1
		ORDER BY date, id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(&t.ID, &t.OrderID, &t.StockID, &t.Type, &t.WeightKg, &t.PricePerKg, &t.Date, &t.Notes); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// ListDetailedByOrder returns the order's movements joined with stock
// descriptions.
func (r *StockTransactionRepo) ListDetailedByOrder(orderID string) ([]*repository.DetailedTransaction, error) {
	rows, err := r.q.Query(context.Background(), detailedQuery+`
		WHERE t.order_id = $1 ORDER BY t.date, t.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list detailed order transactions: %w", err)
	}
	defer rows.Close()
	return collectDetailed(rows)
}

// ListDetailedByContractor returns the contractor's movements across all
// their orders.
func (r *StockTransactionRepo) ListDetailedByContractor(contractorID string) ([]*repository.DetailedTransaction, error) {
	rows, err := r.q.Query(context.Background(), detailedQuery+`
		WHERE o.contractor_id = $1 ORDER BY t.date, t.id`, contractorID)
	if err != nil {
		return nil, fmt.Errorf("list contractor transactions: %w", err)
	}
	defer rows.Close()
	return collectDetailed(rows)
}

// ListDetailedOpen returns every movement belonging to an Open order, for the
// cross-contractor held-stock report.
func (r *StockTransactionRepo) ListDetailedOpen() ([]*repository.DetailedTransaction, error) {
	rows, err := r.q.Query(context.Background(), detailedQuery+`
		WHERE o.status = 'Open' ORDER BY o.contractor_id, t.date, t.id`)
	if err != nil {
		return nil, fmt.Errorf("list open transactions: %w", err)
	}
	defer rows.Close()
	return collectDetailed(rows)
}

// IssuedTotals aggregates total ever-issued kg per contractor and stock.
// contractorID empty means all contractors.
func (r *StockTransactionRepo) IssuedTotals(contractorID string) ([]*repository.IssuedTotal, error) {
	query := `
		SELECT o.contractor_id, c.name, t.stock_id, s.type, s.quality, s.color_shade,
		       SUM(t.weight_kg)
		FROM stock_transactions t
		JOIN stock_items s ON s.id = t.stock_id
		JOIN orders o ON o.id = t.order_id
		JOIN contractors c ON c.id = o.contractor_id
		WHERE t.type = 'Issued' AND ($1 = '' OR o.contractor_id = $1)
		GROUP BY o.contractor_id, c.name, t.stock_id, s.type, s.quality, s.color_shade
		ORDER BY c.name, s.type, s.quality`
	rows, err := r.q.Query(context.Background(), query, contractorID)
	if err != nil {
		return nil, fmt.Errorf("issued totals: %w", err)
	}
	defer rows.Close()

	var out []*repository.IssuedTotal
	for rows.Next() {
		var t repository.IssuedTotal
		if err := rows.Scan(&t.ContractorID, &t.ContractorName, &t.StockID,
			&t.StockType, &t.StockQuality, &t.StockColorShade, &t.TotalIssuedKg); err != nil {
			return nil, fmt.Errorf("scan issued total: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Save persists weight and date edits.
func (r *StockTransactionRepo) Save(t *entity.StockTransaction) error {
	query := `
		UPDATE stock_transactions
		SET weight_kg = $2, date = $3, notes = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, t.ID, t.WeightKg, t.Date, t.Notes)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a transaction row.
func (r *StockTransactionRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM stock_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectDetailed(rows pgx.Rows) ([]*repository.DetailedTransaction, error) {
	var out []*repository.DetailedTransaction
	for rows.Next() {
		var d repository.DetailedTransaction
		if err := rows.Scan(
			&d.ID, &d.OrderID, &d.StockID, &d.Type, &d.WeightKg, &d.PricePerKg, &d.Date, &d.Notes,
			&d.StockType, &d.StockQuality, &d.StockColorShade, &d.ContractorID, &d.OrderStatus,
		); err != nil {
			return nil, fmt.Errorf("scan detailed transaction: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
