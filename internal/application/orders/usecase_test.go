package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirzacarpets/ledger-api/internal/application/orders"
	"github.com/mirzacarpets/ledger-api/internal/domain"
	"github.com/mirzacarpets/ledger-api/internal/domain/dimension"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/testutil/memledger"
)

var ctx = context.Background()

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T) (*memledger.Store, *orders.UseCase) {
	t.Helper()
	store := memledger.New()
	store.Contractors["c1"] = entity.Contractor{ID: "c1", Name: "Rafiq"}
	store.Contractors["c2"] = entity.Contractor{ID: "c2", Name: "Salim"}
	store.StockItems["wool"] = entity.StockItem{
		ID: "wool", Type: "wool", Quality: "merino", ColorShade: "102",
		PricePerKg: dec("50"), QuantityKg: dec("100"),
	}
	uc := orders.New(
		store,
		store.OrderRepo(), store.StockRepo(), store.TxnRepo(),
		store.PaymentRepo(), store.DeductionRepo(), store.ReassignmentRepo(),
		store.ContractorRepo(),
	)
	return store, uc
}

func createOrder(t *testing.T, uc *orders.UseCase, in orders.CreateInput) *entity.Order {
	t.Helper()
	if in.ContractorID == "" {
		in.ContractorID = "c1"
	}
	if in.DesignNumber == "" {
		in.DesignNumber = "D-17"
	}
	if in.DateIssued.IsZero() {
		in.DateIssued = date(2023, 10, 1)
	}
	order, err := uc.Create(ctx, in)
	require.NoError(t, err)
	return order
}

func TestCreateDerivesWageFromArea(t *testing.T) {
	_, uc := newFixture(t)

	order := createOrder(t, uc, orders.CreateInput{
		Length:       dimension.Dimension{Feet: 6},
		Width:        dimension.Dimension{Feet: 4, Inches: 6},
		PricePerSqFt: dec("100"),
	})

	// 6 x 4.5 = 27 sq ft at 100/sq ft.
	assert.True(t, order.Wage.Equal(dec("2700")), "wage = %s", order.Wage)
	assert.Equal(t, entity.OrderStatusOpen, order.Status)
}

func TestCreateWageOverrideWins(t *testing.T) {
	_, uc := newFixture(t)

	order := createOrder(t, uc, orders.CreateInput{
		Length:       dimension.Dimension{Feet: 6},
		Width:        dimension.Dimension{Feet: 4},
		PricePerSqFt: dec("100"),
		Wage:         dec("5000"),
	})

	assert.True(t, order.Wage.Equal(dec("5000")))
}

func TestCreateWithInitialIssues(t *testing.T) {
	store, uc := newFixture(t)

	order := createOrder(t, uc, orders.CreateInput{
		Wage:   dec("1000"),
		Issues: []orders.InitialIssue{{StockID: "wool", WeightKg: dec("10")}},
	})

	item := store.StockItems["wool"]
	assert.True(t, item.QuantityKg.Equal(dec("90")), "stock after issue = %s", item.QuantityKg)

	require.Len(t, store.Transactions, 1)
	txn := store.Transactions[0]
	assert.Equal(t, order.ID, txn.OrderID)
	assert.Equal(t, entity.TxnIssued, txn.Type)
	assert.True(t, txn.PricePerKg.Equal(dec("50")), "frozen price = %s", txn.PricePerKg)
}

func TestCreateInsufficientStockRollsBack(t *testing.T) {
	store, uc := newFixture(t)

	_, err := uc.Create(ctx, orders.CreateInput{
		ContractorID: "c1",
		DesignNumber: "D-17",
		DateIssued:   date(2023, 10, 1),
		Wage:         dec("1000"),
		Issues: []orders.InitialIssue{
			{StockID: "wool", WeightKg: dec("60")},
			{StockID: "wool", WeightKg: dec("60")},
		},
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// Neither the order nor the first issue survived.
	assert.Empty(t, store.Orders)
	assert.Empty(t, store.Transactions)
	assert.True(t, store.StockItems["wool"].QuantityKg.Equal(dec("100")))
}

func TestCreateUnknownContractor(t *testing.T) {
	_, uc := newFixture(t)

	_, err := uc.Create(ctx, orders.CreateInput{
		ContractorID: "ghost",
		DesignNumber: "D-1",
		DateIssued:   date(2023, 10, 1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssueStockFreezesPriceAtIssueTime(t *testing.T) {
	store, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{Wage: dec("1000")})

	_, err := uc.IssueStock(ctx, order.ID, "wool", dec("10"), date(2023, 10, 2), "")
	require.NoError(t, err)

	// Reprice after the issue; the transaction must keep the old price.
	item := store.StockItems["wool"]
	item.PricePerKg = dec("80")
	store.StockItems["wool"] = item

	txns, err := uc.Transactions(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].PricePerKg.Equal(dec("50")))
}

func TestIssueStockClosedOrder(t *testing.T) {
	_, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{Wage: dec("1000")})

	_, err := uc.Complete(ctx, order.ID, orders.CompleteInput{DateCompleted: date(2023, 11, 1)})
	require.NoError(t, err)

	_, err = uc.IssueStock(ctx, order.ID, "wool", dec("5"), date(2023, 11, 2), "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestFinancialsEndToEnd(t *testing.T) {
	store, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{
		Wage:   dec("1000"),
		Issues: []orders.InitialIssue{{StockID: "wool", WeightKg: dec("10")}},
	})
	store.Payments["p1"] = entity.Payment{
		ID: "p1", ContractorID: "c1", OrderID: order.ID,
		Amount: dec("300"), Date: date(2023, 10, 5),
	}

	sum, err := uc.Financials(ctx, order.ID)
	require.NoError(t, err)

	// 1000 - 10*50 - 300 = 200.
	assert.True(t, sum.AmountPending.Equal(dec("200")), "pending = %s", sum.AmountPending)

	// Pure read: calling again changes nothing.
	again, err := uc.Financials(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, sum, again)
}

func TestCompleteReturnsStockAndCloses(t *testing.T) {
	store, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{
		Wage:   dec("1000"),
		Issues: []orders.InitialIssue{{StockID: "wool", WeightKg: dec("10")}},
	})

	// Reprice before completion; the return must still be valued at 50.
	item := store.StockItems["wool"]
	item.PricePerKg = dec("80")
	store.StockItems["wool"] = item

	closed, err := uc.Complete(ctx, order.ID, orders.CompleteInput{
		DateCompleted:  date(2023, 11, 6),
		Reconciliation: []orders.ReconciliationEntry{{StockID: "wool", ReturnedKg: dec("4")}},
		Deductions:     []orders.DeductionInput{{Reason: "damaged corner", Amount: dec("50")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusClosed, closed.Status)
	require.NotNil(t, closed.DateCompleted)

	assert.True(t, store.StockItems["wool"].QuantityKg.Equal(dec("94")))

	require.Len(t, store.Transactions, 2)
	ret := store.Transactions[1]
	assert.Equal(t, entity.TxnReturned, ret.Type)
	assert.True(t, ret.PricePerKg.Equal(dec("50")), "return price = %s", ret.PricePerKg)

	// 1000 - (10*50 - 4*50) - 50 = 650.
	sum, err := uc.Financials(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, sum.AmountPending.Equal(dec("650")), "pending = %s", sum.AmountPending)
}

func TestCompleteKeptProducesNoTransaction(t *testing.T) {
	store, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{
		Wage:   dec("1000"),
		Issues: []orders.InitialIssue{{StockID: "wool", WeightKg: dec("10")}},
	})

	_, err := uc.Complete(ctx, order.ID, orders.CompleteInput{
		DateCompleted:  date(2023, 11, 1),
		Reconciliation: []orders.ReconciliationEntry{{StockID: "wool", ReturnedKg: dec("4"), KeptKg: dec("6")}},
	})
	require.NoError(t, err)

	// Kept weight is not returned to the warehouse and writes no row.
	require.Len(t, store.Transactions, 2)
	assert.True(t, store.StockItems["wool"].QuantityKg.Equal(dec("94")))
}

func TestCompleteRejectsOverReconciliation(t *testing.T) {
	store, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{
		Wage:   dec("1000"),
		Issues: []orders.InitialIssue{{StockID: "wool", WeightKg: dec("10")}},
	})

	_, err := uc.Complete(ctx, order.ID, orders.CompleteInput{
		DateCompleted:  date(2023, 11, 1),
		Reconciliation: []orders.ReconciliationEntry{{StockID: "wool", ReturnedKg: dec("6"), KeptKg: dec("5")}},
	})

	var recErr *domain.ReconciliationError
	require.ErrorAs(t, err, &recErr)
	assert.True(t, recErr.OutstandingKg.Equal(dec("10")))

	// Nothing committed: still Open, stock untouched.
	got, err := uc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusOpen, got.Status)
	assert.True(t, store.StockItems["wool"].QuantityKg.Equal(dec("90")))
	assert.Len(t, store.Transactions, 1)
}

func TestCompleteRepeatedEntriesShareOutstanding(t *testing.T) {
	store, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{
		Wage:   dec("1000"),
		Issues: []orders.InitialIssue{{StockID: "wool", WeightKg: dec("10")}},
	})

	// Each entry is within the 10 kg bound on its own; together they
	// over-return by 2 kg.
	_, err := uc.Complete(ctx, order.ID, orders.CompleteInput{
		DateCompleted: date(2023, 11, 1),
		Reconciliation: []orders.ReconciliationEntry{
			{StockID: "wool", ReturnedKg: dec("6")},
			{StockID: "wool", ReturnedKg: dec("6")},
		},
	})

	var recErr *domain.ReconciliationError
	require.ErrorAs(t, err, &recErr)
	assert.True(t, recErr.OutstandingKg.Equal(dec("4")))

	got, err := uc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusOpen, got.Status)
	assert.True(t, store.StockItems["wool"].QuantityKg.Equal(dec("90")))

	// Split entries that stay within the bound still settle fine.
	closed, err := uc.Complete(ctx, order.ID, orders.CompleteInput{
		DateCompleted: date(2023, 11, 1),
		Reconciliation: []orders.ReconciliationEntry{
			{StockID: "wool", ReturnedKg: dec("6")},
			{StockID: "wool", ReturnedKg: dec("4")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusClosed, closed.Status)
	assert.True(t, store.StockItems["wool"].QuantityKg.Equal(dec("100")))
}

func TestCompleteFinalDimensionsRecomputeWage(t *testing.T) {
	_, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{
		Length:       dimension.Dimension{Feet: 6},
		Width:        dimension.Dimension{Feet: 4},
		PricePerSqFt: dec("100"),
	})

	finalWidth := dimension.Dimension{Feet: 4, Inches: 6}
	closed, err := uc.Complete(ctx, order.ID, orders.CompleteInput{
		DateCompleted: date(2023, 11, 1),
		FinalWidth:    &finalWidth,
	})
	require.NoError(t, err)
	assert.True(t, closed.Wage.Equal(dec("2700")), "recomputed wage = %s", closed.Wage)
}

func TestCompleteTwice(t *testing.T) {
	_, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{Wage: dec("1000")})

	_, err := uc.Complete(ctx, order.ID, orders.CompleteInput{DateCompleted: date(2023, 11, 1)})
	require.NoError(t, err)

	_, err = uc.Complete(ctx, order.ID, orders.CompleteInput{DateCompleted: date(2023, 11, 2)})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestReturnStockAfterClosure(t *testing.T) {
	store, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{
		Wage:   dec("1000"),
		Issues: []orders.InitialIssue{{StockID: "wool", WeightKg: dec("10")}},
	})
	_, err := uc.Complete(ctx, order.ID, orders.CompleteInput{
		DateCompleted:  date(2023, 11, 1),
		Reconciliation: []orders.ReconciliationEntry{{StockID: "wool", KeptKg: dec("10")}},
	})
	require.NoError(t, err)

	txn, err := uc.ReturnStock(ctx, order.ID, "wool", dec("4"), date(2023, 12, 1))
	require.NoError(t, err)
	assert.True(t, txn.PricePerKg.Equal(dec("50")))
	assert.True(t, store.StockItems["wool"].QuantityKg.Equal(dec("94")))

	// Only 6 kg remain outstanding now.
	_, err = uc.ReturnStock(ctx, order.ID, "wool", dec("7"), date(2023, 12, 2))
	var recErr *domain.ReconciliationError
	assert.ErrorAs(t, err, &recErr)
}

func TestReturnStockOpenOrder(t *testing.T) {
	_, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{
		Wage:   dec("1000"),
		Issues: []orders.InitialIssue{{StockID: "wool", WeightKg: dec("10")}},
	})

	_, err := uc.ReturnStock(ctx, order.ID, "wool", dec("4"), date(2023, 10, 5))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestReassign(t *testing.T) {
	store, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{Wage: dec("1000")})

	moved, err := uc.Reassign(ctx, order.ID, "c2", "first weaver fell ill")
	require.NoError(t, err)
	assert.Equal(t, "c2", moved.ContractorID)

	require.Len(t, store.Reassignments, 1)
	audit := store.Reassignments[0]
	assert.Equal(t, "c1", audit.OldContractorID)
	assert.Equal(t, "c2", audit.NewContractorID)
	assert.Equal(t, "first weaver fell ill", audit.Reason)
}

func TestReassignSameContractor(t *testing.T) {
	_, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{Wage: dec("1000")})

	_, err := uc.Reassign(ctx, order.ID, "c1", "no-op")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReassignClosedOrder(t *testing.T) {
	_, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{Wage: dec("1000")})
	_, err := uc.Complete(ctx, order.ID, orders.CompleteInput{DateCompleted: date(2023, 11, 1)})
	require.NoError(t, err)

	_, err = uc.Reassign(ctx, order.ID, "c2", "too late")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestUpdateTransactionAdjustsInventory(t *testing.T) {
	store, uc := newFixture(t)
	createOrder(t, uc, orders.CreateInput{
		Wage:   dec("1000"),
		Issues: []orders.InitialIssue{{StockID: "wool", WeightKg: dec("10")}},
	})
	txnID := store.Transactions[0].ID

	_, err := uc.UpdateTransaction(ctx, txnID, dec("15"), time.Time{})
	require.NoError(t, err)
	assert.True(t, store.StockItems["wool"].QuantityKg.Equal(dec("85")))

	_, err = uc.UpdateTransaction(ctx, txnID, dec("8"), time.Time{})
	require.NoError(t, err)
	assert.True(t, store.StockItems["wool"].QuantityKg.Equal(dec("92")))
}

func TestUpdateTransactionInsufficientStock(t *testing.T) {
	store, uc := newFixture(t)
	createOrder(t, uc, orders.CreateInput{
		Wage:   dec("1000"),
		Issues: []orders.InitialIssue{{StockID: "wool", WeightKg: dec("10")}},
	})
	txnID := store.Transactions[0].ID

	// 90 kg on hand; growing the issue to 150 needs 140 more.
	_, err := uc.UpdateTransaction(ctx, txnID, dec("150"), time.Time{})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.StockItems["wool"].QuantityKg.Equal(dec("90")))
}

func TestDeleteTransactionRestoresStock(t *testing.T) {
	store, uc := newFixture(t)
	createOrder(t, uc, orders.CreateInput{
		Wage:   dec("1000"),
		Issues: []orders.InitialIssue{{StockID: "wool", WeightKg: dec("10")}},
	})
	txnID := store.Transactions[0].ID

	require.NoError(t, uc.DeleteTransaction(ctx, txnID))
	assert.Empty(t, store.Transactions)
	assert.True(t, store.StockItems["wool"].QuantityKg.Equal(dec("100")))
}

func TestDeleteTransactionClosedOrder(t *testing.T) {
	store, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{
		Wage:   dec("1000"),
		Issues: []orders.InitialIssue{{StockID: "wool", WeightKg: dec("10")}},
	})
	issuedID := store.Transactions[0].ID
	_, err := uc.Complete(ctx, order.ID, orders.CompleteInput{
		DateCompleted:  date(2023, 11, 1),
		Reconciliation: []orders.ReconciliationEntry{{StockID: "wool", ReturnedKg: dec("4")}},
	})
	require.NoError(t, err)

	// Closed order: edits are rejected before the net check even matters.
	err = uc.DeleteTransaction(ctx, issuedID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestUpdateClosedOrder(t *testing.T) {
	_, uc := newFixture(t)
	order := createOrder(t, uc, orders.CreateInput{Wage: dec("1000")})
	_, err := uc.Complete(ctx, order.ID, orders.CompleteInput{DateCompleted: date(2023, 11, 1)})
	require.NoError(t, err)

	notes := "late edit"
	_, err = uc.Update(ctx, order.ID, orders.UpdateInput{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
