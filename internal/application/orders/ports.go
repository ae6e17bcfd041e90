package orders

import (
	"context"

	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

// Ledger bundles the repositories a transactional order operation touches,
// all bound to the same database transaction.
type Ledger struct {
	Orders        repository.OrderRepository
	Stock         repository.StockItemRepository
	Transactions  repository.StockTransactionRepository
	Payments      repository.PaymentRepository
	Deductions    repository.DeductionRepository
	Reassignments repository.ReassignmentRepository
}

// TxRunner executes fn inside one database transaction and commits only if fn
// returns nil. It is the all-or-nothing boundary for compound operations:
// stock must never stay decremented when the surrounding order write aborts.
type TxRunner interface {
	Run(ctx context.Context, fn func(l Ledger) error) error
}
