package reports_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirzacarpets/ledger-api/internal/application/reports"
	"github.com/mirzacarpets/ledger-api/internal/domain"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/testutil/memledger"
)

var ctx = context.Background()

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture() (*memledger.Store, *reports.UseCase) {
	store := memledger.New()
	store.Contractors["c1"] = entity.Contractor{ID: "c1", Name: "Rafiq"}
	store.Contractors["c2"] = entity.Contractor{ID: "c2", Name: "Salim"}
	store.StockItems["wool"] = entity.StockItem{ID: "wool", Type: "wool", Quality: "merino", ColorShade: "102"}
	store.StockItems["silk"] = entity.StockItem{ID: "silk", Type: "silk", Quality: "mulberry"}
	uc := reports.New(
		store.ContractorRepo(), store.StockRepo(), store.OrderRepo(),
		store.TxnRepo(), store.PaymentRepo(), store.DeductionRepo(), nil,
	)
	return store, uc
}

func TestHeldStock(t *testing.T) {
	store, uc := newFixture()

	store.Orders["o1"] = entity.Order{ID: "o1", ContractorID: "c1", Status: entity.OrderStatusOpen}
	store.Orders["o2"] = entity.Order{ID: "o2", ContractorID: "c1", Status: entity.OrderStatusOpen}
	store.Orders["o3"] = entity.Order{ID: "o3", ContractorID: "c2", Status: entity.OrderStatusClosed}
	store.Transactions = []entity.StockTransaction{
		// c1 holds 10-4=6 wool on o1 plus 5 on o2 = 11 net.
		{ID: "t1", OrderID: "o1", StockID: "wool", Type: entity.TxnIssued, WeightKg: dec("10")},
		{ID: "t2", OrderID: "o1", StockID: "wool", Type: entity.TxnReturned, WeightKg: dec("4")},
		{ID: "t3", OrderID: "o2", StockID: "wool", Type: entity.TxnIssued, WeightKg: dec("5")},
		// Fully settled silk position stays out of the report.
		{ID: "t4", OrderID: "o2", StockID: "silk", Type: entity.TxnIssued, WeightKg: dec("2")},
		{ID: "t5", OrderID: "o2", StockID: "silk", Type: entity.TxnReturned, WeightKg: dec("2")},
		// Closed order: c2 holds nothing.
		{ID: "t6", OrderID: "o3", StockID: "wool", Type: entity.TxnIssued, WeightKg: dec("8")},
	}

	lines, err := uc.HeldStock(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "c1", lines[0].ContractorID)
	assert.Equal(t, "Rafiq", lines[0].ContractorName)
	assert.Equal(t, "wool merino #102", lines[0].Description)
	assert.True(t, lines[0].NetWeightKg.Equal(dec("11")), "net = %s", lines[0].NetWeightKg)
}

func TestIssueHistoryIgnoresReturns(t *testing.T) {
	store, uc := newFixture()

	store.Orders["o1"] = entity.Order{ID: "o1", ContractorID: "c1", Status: entity.OrderStatusClosed}
	store.Orders["o2"] = entity.Order{ID: "o2", ContractorID: "c2", Status: entity.OrderStatusOpen}
	store.Transactions = []entity.StockTransaction{
		{ID: "t1", OrderID: "o1", StockID: "wool", Type: entity.TxnIssued, WeightKg: dec("10")},
		{ID: "t2", OrderID: "o1", StockID: "wool", Type: entity.TxnReturned, WeightKg: dec("10")},
		{ID: "t3", OrderID: "o2", StockID: "wool", Type: entity.TxnIssued, WeightKg: dec("5")},
	}

	all, err := uc.IssueHistory(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	byContractor := map[string]decimal.Decimal{}
	for _, tot := range all {
		byContractor[tot.ContractorID] = tot.TotalIssuedKg
	}
	// Ever-issued, so the fully returned 10 kg still counts.
	assert.True(t, byContractor["c1"].Equal(dec("10")))
	assert.True(t, byContractor["c2"].Equal(dec("5")))

	one, err := uc.IssueHistory(ctx, "c2")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Salim", one[0].ContractorName)
}

func TestExportWithoutExporter(t *testing.T) {
	_, uc := newFixture()

	_, err := uc.Export(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
