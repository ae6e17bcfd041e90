package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mirzacarpets/ledger-api/internal/application/orders"
)

var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction with every
// repository bound to the same tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, runs fn with tx-bound repositories, and commits
// or rolls back as a unit.
func (r *TxRunner) Run(ctx context.Context, fn func(l orders.Ledger) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	l := orders.Ledger{
		Orders:        NewOrderRepository(tx),
		Stock:         NewStockItemRepository(tx),
		Transactions:  NewStockTransactionRepository(tx),
		Payments:      NewPaymentRepository(tx),
		Deductions:    NewDeductionRepository(tx),
		Reassignments: NewReassignmentRepository(tx),
	}
	if err := fn(l); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
