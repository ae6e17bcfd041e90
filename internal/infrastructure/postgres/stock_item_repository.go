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

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implements the StockItemRepository port on PostgreSQL
// (usable with pool or tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository builds the persistence adapter for stock items.
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, type, quality, color_shade, price_per_kg, quantity_kg, created_at, updated_at`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	err := row.Scan(&s.ID, &s.Type, &s.Quality, &s.ColorShade, &s.PricePerKg, &s.QuantityKg, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create persists a new stock item. The unique (type, quality, color_shade)
// constraint maps to ErrDuplicate.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Type, item.Quality, item.ColorShade,
		item.PricePerKg, item.QuantityKg, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID fetches one stock item, nil when absent.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return item, nil
}

// GetForUpdate locks the row for the current transaction.
func (r *StockItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("lock stock item: %w", err)
	}
	return item, nil
}

// Save persists quantity and price changes.
func (r *StockItemRepo) Save(item *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET price_per_kg = $2, quantity_kg = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, item.ID, item.PricePerKg, item.QuantityKg, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search filters by case-insensitive substrings, AND-combined. Empty filter
// fields match everything.
func (r *StockItemRepo) Search(f repository.StockItemFilter) ([]*entity.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE ($1 = '' OR type ILIKE $2)
		  AND ($3 = '' OR quality ILIKE $4)
		  AND ($5 = '' OR color_shade ILIKE $6)
		ORDER BY type, quality, color_shade`
	rows, err := r.q.Query(context.Background(), query,
		f.Type, like(f.Type), f.Quality, like(f.Quality), f.ColorShade, like(f.ColorShade),
	)
	if err != nil {
		return nil, fmt.Errorf("search stock items: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
