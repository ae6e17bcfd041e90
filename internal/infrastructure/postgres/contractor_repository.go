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

var _ repository.ContractorRepository = (*ContractorRepo)(nil)

// ContractorRepo implements the ContractorRepository port on PostgreSQL
// (usable with pool or tx).
type ContractorRepo struct {
	q Querier
}

// NewContractorRepository builds the persistence adapter for contractors.
func NewContractorRepository(q Querier) *ContractorRepo {
	return &ContractorRepo{q: q}
}

// Create persists a new contractor.
func (r *ContractorRepo) Create(c *entity.Contractor) error {
	query := `
		INSERT INTO contractors (id, name, contact_info, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.ContactInfo, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contractor: %w", err)
	}
	return nil
}

// GetByID fetches one contractor, nil when absent.
func (r *ContractorRepo) GetByID(id string) (*entity.Contractor, error) {
	query := `
		SELECT id, name, contact_info, created_at
		FROM contractors WHERE id = $1`
	var c entity.Contractor
	err := r.q.QueryRow(context.Background(), query, id).Scan(&c.ID, &c.Name, &c.ContactInfo, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contractor: %w", err)
	}
	return &c, nil
}

// List returns all contractors ordered by name.
func (r *ContractorRepo) List() ([]*entity.Contractor, error) {
	query := `
		SELECT id, name, contact_info, created_at
		FROM contractors ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list contractors: %w", err)
	}
	defer rows.Close()

	var out []*entity.Contractor
	for rows.Next() {
		var c entity.Contractor
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactInfo, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contractor: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
