package finance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/finance"
)

var (
	today = time.Date(2023, 10, 20, 0, 0, 0, 0, time.UTC)

	d50   = decimal.NewFromInt(50)
	d300  = decimal.NewFromInt(300)
	d1000 = decimal.NewFromInt(1000)
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func issued(stockID string, kg, pricePerKg float64) entity.StockTransaction {
	return entity.StockTransaction{
		OrderID:    "order-1",
		StockID:    stockID,
		Type:       entity.TxnIssued,
		WeightKg:   decimal.NewFromFloat(kg),
		PricePerKg: decimal.NewFromFloat(pricePerKg),
		Date:       today,
	}
}

func returned(stockID string, kg, pricePerKg float64) entity.StockTransaction {
	t := issued(stockID, kg, pricePerKg)
	t.Type = entity.TxnReturned
	return t
}

// End-to-end scenario: wage 1000, 10kg issued @50 (issuedValue 500), payment
// of 300, not yet due -> pending = 1000 - 500 - 0 - 300 = 200. After a 4kg
// return at the same frozen price, netStockValue drops to 300 and pending
// rises to 400.
func TestSummarize_EndToEnd(t *testing.T) {
	order := entity.Order{ID: "order-1", Wage: d1000, Status: entity.OrderStatusOpen}
	ledger := finance.OrderLedger{
		Order:        order,
		Transactions: []entity.StockTransaction{issued("wool", 10, 50)},
		Payments:     []entity.Payment{{OrderID: "order-1", Amount: d300}},
	}

	s := ledger.Summarize(today)
	assert.True(t, s.IssuedValue.Equal(decimal.NewFromInt(500)), "issued %s", s.IssuedValue)
	assert.True(t, s.NetStockValue.Equal(decimal.NewFromInt(500)))
	assert.True(t, s.TotalFine.IsZero())
	assert.True(t, s.AmountPending.Equal(decimal.NewFromInt(200)), "pending %s", s.AmountPending)

	ledger.Transactions = append(ledger.Transactions, returned("wool", 4, 50))
	s = ledger.Summarize(today)
	assert.True(t, s.NetStockValue.Equal(d300), "net %s", s.NetStockValue)
	assert.True(t, s.AmountPending.Equal(decimal.NewFromInt(400)), "pending %s", s.AmountPending)
}

// Calling Summarize twice without intervening writes returns identical results.
func TestSummarize_Idempotent(t *testing.T) {
	due := date(2023, 10, 1)
	order := entity.Order{
		ID: "order-1", Wage: d1000, Status: entity.OrderStatusOpen,
		DateDue: &due, PenaltyPerDay: decimal.NewFromInt(5),
	}
	ledger := finance.OrderLedger{
		Order:        order,
		Transactions: []entity.StockTransaction{issued("wool", 10, 50), returned("wool", 2, 50)},
		Payments:     []entity.Payment{{OrderID: "order-1", Amount: d300}},
		Deductions:   []entity.Deduction{{OrderID: "order-1", Reason: "damage", Amount: d50}},
	}

	first := ledger.Summarize(today)
	second := ledger.Summarize(today)
	assert.Equal(t, first, second)
}

// Changing a stock item's current price must not change historic financials:
// the engine only ever sees the price frozen on each transaction.
func TestSummarize_PriceFrozenAtIssueTime(t *testing.T) {
	ledger := finance.OrderLedger{
		Order:        entity.Order{ID: "order-1", Wage: d1000, Status: entity.OrderStatusOpen},
		Transactions: []entity.StockTransaction{issued("wool", 10, 50)},
	}
	before := ledger.Summarize(today)

	// A repricing touches entity.StockItem.PricePerKg only; the transaction
	// keeps its frozen 50/kg and the summary is unchanged.
	item := entity.StockItem{ID: "wool", PricePerKg: decimal.NewFromInt(50)}
	item.PricePerKg = decimal.NewFromInt(80)

	after := ledger.Summarize(today)
	assert.Equal(t, before, after)
	assert.True(t, after.IssuedValue.Equal(decimal.NewFromInt(500)))
}

func TestSummarize_DeductionsAndFineAreSeparateSubtractions(t *testing.T) {
	due := date(2023, 11, 1)
	completed := date(2023, 11, 6)
	order := entity.Order{
		ID: "order-1", Wage: d1000, Status: entity.OrderStatusClosed,
		DateDue: &due, DateCompleted: &completed,
		PenaltyPerDay: decimal.NewFromInt(5),
	}
	ledger := finance.OrderLedger{
		Order:        order,
		Transactions: []entity.StockTransaction{issued("wool", 10, 50), returned("wool", 10, 50)},
		Payments:     []entity.Payment{{OrderID: "order-1", Amount: d300}},
		Deductions: []entity.Deduction{
			{Reason: "stain", Amount: d50},
			{Reason: "late trim", Amount: d50},
		},
	}

	s := ledger.Summarize(today)
	assert.True(t, s.NetStockValue.IsZero())
	assert.True(t, s.TotalDeductions.Equal(decimal.NewFromInt(100)))
	assert.True(t, s.TotalFine.Equal(decimal.NewFromInt(25)), "fine %s", s.TotalFine)
	// 1000 - 0 - 100 - 25 - 300
	assert.True(t, s.AmountPending.Equal(decimal.NewFromInt(575)), "pending %s", s.AmountPending)
}

func TestSummarize_MissingOptionalsAreZero(t *testing.T) {
	s := finance.OrderLedger{Order: entity.Order{Status: entity.OrderStatusOpen}}.Summarize(today)
	assert.True(t, s.Wage.IsZero())
	assert.True(t, s.AmountPending.IsZero())
	assert.True(t, s.TotalFine.IsZero())
}

func TestFine(t *testing.T) {
	due := date(2023, 11, 1)
	penalty := decimal.NewFromInt(5)

	tests := []struct {
		name      string
		order     entity.Order
		today     time.Time
		wantTotal int64
	}{
		{
			name: "closed five days late",
			order: func() entity.Order {
				completed := date(2023, 11, 6)
				return entity.Order{Status: entity.OrderStatusClosed, DateDue: &due,
					DateCompleted: &completed, PenaltyPerDay: penalty}
			}(),
			today:     date(2024, 1, 1), // irrelevant for closed orders
			wantTotal: 25,
		},
		{
			name: "closed on due date",
			order: func() entity.Order {
				completed := due
				return entity.Order{Status: entity.OrderStatusClosed, DateDue: &due,
					DateCompleted: &completed, PenaltyPerDay: penalty}
			}(),
			wantTotal: 0,
		},
		{
			name: "closed before due date",
			order: func() entity.Order {
				completed := date(2023, 10, 28)
				return entity.Order{Status: entity.OrderStatusClosed, DateDue: &due,
					DateCompleted: &completed, PenaltyPerDay: penalty}
			}(),
			wantTotal: 0,
		},
		{
			name:      "open order previewed against today",
			order:     entity.Order{Status: entity.OrderStatusOpen, DateDue: &due, PenaltyPerDay: penalty},
			today:     date(2023, 11, 4),
			wantTotal: 15,
		},
		{
			name:      "no due date means no fine",
			order:     entity.Order{Status: entity.OrderStatusOpen, PenaltyPerDay: penalty},
			today:     date(2024, 1, 1),
			wantTotal: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := finance.Fine(tt.order, tt.today)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.wantTotal)),
				"fine = %s, want %d", got, tt.wantTotal)
		})
	}
}

func TestDaysLate_WholeDays(t *testing.T) {
	due := date(2023, 11, 1)
	assert.EqualValues(t, 5, finance.DaysLate(due, date(2023, 11, 6)))
	assert.EqualValues(t, 0, finance.DaysLate(due, due))
	assert.EqualValues(t, 0, finance.DaysLate(due, date(2023, 10, 20)))
	// Time-of-day never rounds a partial day up.
	assert.EqualValues(t, 1, finance.DaysLate(due, time.Date(2023, 11, 2, 23, 59, 0, 0, time.UTC)))
}

func TestOutstanding_NetsPerStock(t *testing.T) {
	txns := []entity.StockTransaction{
		issued("wool", 10, 50),
		issued("silk", 3, 200),
		returned("wool", 4, 50),
	}
	net := finance.Outstanding(txns)
	assert.True(t, net["wool"].Equal(decimal.NewFromInt(6)))
	assert.True(t, net["silk"].Equal(decimal.NewFromInt(3)))
}

func TestNetPositions_FloorsSettledPositions(t *testing.T) {
	txns := []entity.StockTransaction{
		issued("wool", 10, 50),
		returned("wool", 10, 50),
		issued("silk", 3, 200),
		returned("silk", 2.9995, 200), // residue below the 0.001kg floor
		issued("cotton", 5, 30),
	}
	got := finance.NetPositions(txns)
	require.Len(t, got, 1)
	assert.Equal(t, "cotton", got[0].StockID)
	assert.True(t, got[0].NetWeightKg.Equal(decimal.NewFromInt(5)))
}

// Contractor with two orders pending 400 and 150 plus one general payment of
// 50 owes 500: per-order payments are already netted inside each pending.
func TestSummarizeContractor_GeneralPaymentsNetOnce(t *testing.T) {
	ledgers := []finance.OrderLedger{
		{
			Order:        entity.Order{ID: "o1", Quality: "60x60", Wage: d1000, Status: entity.OrderStatusOpen},
			Transactions: []entity.StockTransaction{issued("wool", 10, 50), returned("wool", 4, 50)},
			Payments:     []entity.Payment{{OrderID: "o1", Amount: d300}},
		},
		{
			Order:    entity.Order{ID: "o2", Quality: "80x80", Wage: decimal.NewFromInt(150), Status: entity.OrderStatusOpen},
			Payments: nil,
		},
	}
	general := []entity.Payment{{ContractorID: "c1", Amount: d50}}

	totals, buckets := finance.SummarizeContractor(ledgers, general, today)

	assert.True(t, totals.BalanceOwed.Equal(decimal.NewFromInt(500)), "owed %s", totals.BalanceOwed)
	assert.True(t, totals.TotalPaid.Equal(decimal.NewFromInt(350)))
	assert.True(t, totals.TotalWages.Equal(decimal.NewFromInt(1150)))

	require.Len(t, buckets, 2)
	assert.Equal(t, "60x60", buckets[0].Quality)
	assert.True(t, buckets[0].BalanceOwed.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, "80x80", buckets[1].Quality)
	assert.True(t, buckets[1].BalanceOwed.Equal(decimal.NewFromInt(150)))
}

// Quality grouping is case-insensitive: "60x60" and "60X60" share a bucket.
func TestSummarizeContractor_QualityCaseInsensitive(t *testing.T) {
	ledgers := []finance.OrderLedger{
		{Order: entity.Order{ID: "o1", Quality: "60x60", Wage: d1000, Status: entity.OrderStatusOpen}},
		{Order: entity.Order{ID: "o2", Quality: "60X60", Wage: d300, Status: entity.OrderStatusOpen}},
	}

	_, buckets := finance.SummarizeContractor(ledgers, nil, today)

	require.Len(t, buckets, 1)
	assert.True(t, buckets[0].TotalWages.Equal(decimal.NewFromInt(1300)))
}
