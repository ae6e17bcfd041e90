package contractors_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirzacarpets/ledger-api/internal/application/contractors"
	"github.com/mirzacarpets/ledger-api/internal/domain"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/testutil/memledger"
)

var ctx = context.Background()

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUseCase(store *memledger.Store) *contractors.UseCase {
	return contractors.New(
		store.ContractorRepo(), store.OrderRepo(), store.TxnRepo(),
		store.PaymentRepo(), store.DeductionRepo(), nil,
	)
}

func TestCreateAndList(t *testing.T) {
	store := memledger.New()
	uc := newUseCase(store)

	created, err := uc.Create(ctx, "Rafiq", "village road 12")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = uc.Create(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	all, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Rafiq", all[0].Name)
}

func TestDetailsUnknownContractor(t *testing.T) {
	uc := newUseCase(memledger.New())
	_, err := uc.Details(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Two orders of different qualities plus a general payment: per-order
// summaries, held stock on the open order, and a contractor balance where
// the general payment is netted only at the top.
func TestDetails(t *testing.T) {
	store := memledger.New()
	uc := newUseCase(store)

	store.Contractors["c1"] = entity.Contractor{ID: "c1", Name: "Rafiq"}
	store.StockItems["wool"] = entity.StockItem{
		ID: "wool", Type: "wool", Quality: "merino", ColorShade: "102",
		PricePerKg: dec("50"), QuantityKg: dec("100"),
	}

	completed := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)
	store.Orders["o1"] = entity.Order{
		ID: "o1", ContractorID: "c1", Quality: "60x60",
		Wage: dec("1000"), Status: entity.OrderStatusClosed, DateCompleted: &completed,
	}
	store.Orders["o2"] = entity.Order{
		ID: "o2", ContractorID: "c1", Quality: "40x40",
		Wage: dec("800"), Status: entity.OrderStatusOpen,
	}
	store.Transactions = []entity.StockTransaction{
		{ID: "t1", OrderID: "o1", StockID: "wool", Type: entity.TxnIssued, WeightKg: dec("10"), PricePerKg: dec("50")},
		{ID: "t2", OrderID: "o1", StockID: "wool", Type: entity.TxnReturned, WeightKg: dec("4"), PricePerKg: dec("50")},
		{ID: "t3", OrderID: "o2", StockID: "wool", Type: entity.TxnIssued, WeightKg: dec("7"), PricePerKg: dec("50")},
	}
	store.Payments["p1"] = entity.Payment{ID: "p1", ContractorID: "c1", OrderID: "o1", Amount: dec("300")}
	store.Payments["p2"] = entity.Payment{ID: "p2", ContractorID: "c1", Amount: dec("100")} // general

	details, err := uc.Details(ctx, "c1")
	require.NoError(t, err)

	require.Len(t, details.Orders, 2)
	byID := map[string]contractors.OrderView{}
	for _, v := range details.Orders {
		byID[v.Order.ID] = v
	}
	// o1: 1000 - (500-200) - 300 = 400.
	assert.True(t, byID["o1"].Summary.AmountPending.Equal(dec("400")))
	// o2: 800 - 350 = 450; the general payment does not touch it.
	assert.True(t, byID["o2"].Summary.AmountPending.Equal(dec("450")))

	// Held stock counts only the open order's net position.
	require.Len(t, details.HeldStock, 1)
	assert.Equal(t, "wool", details.HeldStock[0].StockID)
	assert.Equal(t, "wool merino #102", details.HeldStock[0].Description)
	assert.True(t, details.HeldStock[0].NetWeightKg.Equal(dec("7")))

	// Balance: 400 + 450 - 100 general = 750.
	assert.True(t, details.Totals.BalanceOwed.Equal(dec("750")), "balance = %s", details.Totals.BalanceOwed)
	assert.True(t, details.Totals.TotalPaid.Equal(dec("400")))

	require.Len(t, details.ByQuality, 2)
	qualities := map[string]decimal.Decimal{}
	for _, q := range details.ByQuality {
		qualities[q.Quality] = q.BalanceOwed
	}
	assert.True(t, qualities["60x60"].Equal(dec("400")))
	assert.True(t, qualities["40x40"].Equal(dec("450")))

	assert.Len(t, details.Payments, 2)
}

func TestStatementWithoutGenerator(t *testing.T) {
	store := memledger.New()
	store.Contractors["c1"] = entity.Contractor{ID: "c1", Name: "Rafiq"}
	uc := newUseCase(store)

	_, err := uc.Statement(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
