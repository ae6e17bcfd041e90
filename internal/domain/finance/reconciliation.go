// Package finance is the order reconciliation engine: the single place where
// issue/return transactions, deductions, overdue fines and payments turn into
// an authoritative pending amount per order, and where those order results
// roll up into a contractor balance.
//
// Every function here is pure over already-loaded state, so the same inputs
// always produce the same outputs and the arithmetic is testable without a
// database. All values are decimals; absent optionals contribute zero.
package finance

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
)

// EpsilonKg is the weighing-scale noise floor. Net positions at or below it
// are treated as fully settled, and completion reconciliations may exceed the
// outstanding weight by at most this much.
var EpsilonKg = decimal.RequireFromString("0.001")

// OrderLedger is everything the engine needs about one order. Payments holds
// only order-scoped payments; general contractor payments are netted at the
// contractor level, never per order.
type OrderLedger struct {
	Order        entity.Order
	Transactions []entity.StockTransaction
	Payments     []entity.Payment
	Deductions   []entity.Deduction
}

// Summary is the financial breakdown of a single order.
//
// IssuedValue and ReturnedValue are summed at each transaction's frozen
// price, so repricing a stock item never rewrites a historical order.
// NetStockValue is the material the contractor consumed: material kept
// against pay is simply never returned, which keeps it inside NetStockValue
// without any explicit line.
//
// AmountPending = Wage - NetStockValue - TotalDeductions - TotalFine - AmountPaid.
// The fine is always a separate final subtraction, never folded into the wage.
type Summary struct {
	Wage            decimal.Decimal `json:"wage"`
	IssuedValue     decimal.Decimal `json:"issued_value"`
	ReturnedValue   decimal.Decimal `json:"returned_value"`
	NetStockValue   decimal.Decimal `json:"net_stock_value"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalFine       decimal.Decimal `json:"total_fine"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	AmountPending   decimal.Decimal `json:"amount_pending"`
}

// Summarize computes the order's financial summary. today anchors the fine
// preview for open orders; closed orders use their completion date instead.
func (l OrderLedger) Summarize(today time.Time) Summary {
	var s Summary
	s.Wage = l.Order.Wage
	for _, t := range l.Transactions {
		switch t.Type {
		case entity.TxnIssued:
			s.IssuedValue = s.IssuedValue.Add(t.Value())
		case entity.TxnReturned:
			s.ReturnedValue = s.ReturnedValue.Add(t.Value())
		}
	}
	s.NetStockValue = s.IssuedValue.Sub(s.ReturnedValue)
	for _, d := range l.Deductions {
		s.TotalDeductions = s.TotalDeductions.Add(d.Amount)
	}
	for _, p := range l.Payments {
		s.AmountPaid = s.AmountPaid.Add(p.Amount)
	}
	s.TotalFine = Fine(l.Order, today)
	s.AmountPending = s.Wage.
		Sub(s.NetStockValue).
		Sub(s.TotalDeductions).
		Sub(s.TotalFine).
		Sub(s.AmountPaid)
	return s
}

// Fine is the overdue penalty: whole days late times the per-day penalty.
// No due date means no fine. Closed orders are judged by their completion
// date; open orders are previewed against today.
func Fine(o entity.Order, today time.Time) decimal.Decimal {
	if o.DateDue == nil || o.PenaltyPerDay.IsZero() {
		return decimal.Zero
	}
	ref := today
	if o.Status == entity.OrderStatusClosed && o.DateCompleted != nil {
		ref = *o.DateCompleted
	}
	late := DaysLate(*o.DateDue, ref)
	if late <= 0 {
		return decimal.Zero
	}
	return o.PenaltyPerDay.Mul(decimal.NewFromInt(late))
}

// DaysLate counts whole calendar days from due to ref, never negative.
func DaysLate(due, ref time.Time) int64 {
	d := midnight(ref).Sub(midnight(due))
	if d <= 0 {
		return 0
	}
	return int64(d.Hours() / 24)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Outstanding nets issued minus returned weight per stock id, including
// settled (zero) positions. Completion validation works off this map.
func Outstanding(txns []entity.StockTransaction) map[string]decimal.Decimal {
	net := make(map[string]decimal.Decimal, len(txns))
	for _, t := range txns {
		net[t.StockID] = net[t.StockID].Add(t.SignedWeight())
	}
	return net
}

// StockPosition is a net outstanding weight for one stock id.
type StockPosition struct {
	StockID     string
	NetWeightKg decimal.Decimal
}

// NetPositions nets the transactions and keeps positions above the noise
// floor, in order of first appearance so output is deterministic.
func NetPositions(txns []entity.StockTransaction) []StockPosition {
	net := Outstanding(txns)
	seen := make(map[string]bool, len(net))
	var out []StockPosition
	for _, t := range txns {
		if seen[t.StockID] {
			continue
		}
		seen[t.StockID] = true
		if net[t.StockID].GreaterThan(EpsilonKg) {
			out = append(out, StockPosition{StockID: t.StockID, NetWeightKg: net[t.StockID]})
		}
	}
	return out
}

// LedgerTotals is the financial-summary shape shared by a whole contractor
// and by each per-quality bucket: the contractor summary is a reduce over all
// orders, a quality bucket the same reduce over the filtered subset.
type LedgerTotals struct {
	TotalWages      decimal.Decimal `json:"total_wages"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalFines      decimal.Decimal `json:"total_fines"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	BalanceOwed     decimal.Decimal `json:"balance_owed"`
}

func (t *LedgerTotals) add(s Summary) {
	t.TotalWages = t.TotalWages.Add(s.Wage)
	t.TotalStockValue = t.TotalStockValue.Add(s.NetStockValue)
	t.TotalDeductions = t.TotalDeductions.Add(s.TotalDeductions)
	t.TotalFines = t.TotalFines.Add(s.TotalFine)
	t.TotalPaid = t.TotalPaid.Add(s.AmountPaid)
	t.BalanceOwed = t.BalanceOwed.Add(s.AmountPending)
}

// QualityTotals is one per-quality bucket of a contractor summary.
type QualityTotals struct {
	Quality string `json:"quality"`
	LedgerTotals
}

// SummarizeContractor reduces order summaries into a contractor balance.
// General payments reduce the top-level balance (and count in TotalPaid) but
// are not attributed to any quality bucket.
// Per-order payments are already netted inside each order's pending amount;
// only the general payments are subtracted here on top.
func SummarizeContractor(ledgers []OrderLedger, generalPayments []entity.Payment, today time.Time) (LedgerTotals, []QualityTotals) {
	var totals LedgerTotals
	byQuality := make(map[string]*QualityTotals)
	var order []string

	for _, l := range ledgers {
		s := l.Summarize(today)
		totals.add(s)

		key := strings.ToLower(strings.TrimSpace(l.Order.Quality))
		q, ok := byQuality[key]
		if !ok {
			q = &QualityTotals{Quality: l.Order.Quality}
			byQuality[key] = q
			order = append(order, key)
		}
		q.add(s)
	}

	for _, p := range generalPayments {
		totals.TotalPaid = totals.TotalPaid.Add(p.Amount)
		totals.BalanceOwed = totals.BalanceOwed.Sub(p.Amount)
	}

	buckets := make([]QualityTotals, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, *byQuality[key])
	}
	return totals, buckets
}
