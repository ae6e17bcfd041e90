// Package memledger is an in-memory implementation of the persistence ports
// for use-case tests. Its TxRunner snapshots the store before the callback
// and restores it on error, giving tests the same all-or-nothing semantics a
// database transaction provides.
package memledger

import (
	"context"
	"sort"
	"strings"

	"github.com/mirzacarpets/ledger-api/internal/application/orders"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

// Store holds all entities in memory. Not safe for concurrent use; tests are
// sequential.
type Store struct {
	Contractors   map[string]entity.Contractor
	StockItems    map[string]entity.StockItem
	Orders        map[string]entity.Order
	Transactions  []entity.StockTransaction
	Payments      map[string]entity.Payment
	Deductions    []entity.Deduction
	Reassignments []entity.Reassignment
}

// New returns an empty store.
func New() *Store {
	return &Store{
		Contractors: map[string]entity.Contractor{},
		StockItems:  map[string]entity.StockItem{},
		Orders:      map[string]entity.Order{},
		Payments:    map[string]entity.Payment{},
	}
}

func (s *Store) snapshot() Store {
	cp := Store{
		Contractors:   make(map[string]entity.Contractor, len(s.Contractors)),
		StockItems:    make(map[string]entity.StockItem, len(s.StockItems)),
		Orders:        make(map[string]entity.Order, len(s.Orders)),
		Payments:      make(map[string]entity.Payment, len(s.Payments)),
		Transactions:  append([]entity.StockTransaction(nil), s.Transactions...),
		Deductions:    append([]entity.Deduction(nil), s.Deductions...),
		Reassignments: append([]entity.Reassignment(nil), s.Reassignments...),
	}
	for k, v := range s.Contractors {
		cp.Contractors[k] = v
	}
	for k, v := range s.StockItems {
		cp.StockItems[k] = v
	}
	for k, v := range s.Orders {
		cp.Orders[k] = v
	}
	for k, v := range s.Payments {
		cp.Payments[k] = v
	}
	return cp
}

// Ledger bundles the store's repositories the way orders.TxRunner expects.
func (s *Store) Ledger() orders.Ledger {
	return orders.Ledger{
		Orders:        s.OrderRepo(),
		Stock:         s.StockRepo(),
		Transactions:  s.TxnRepo(),
		Payments:      s.PaymentRepo(),
		Deductions:    s.DeductionRepo(),
		Reassignments: s.ReassignmentRepo(),
	}
}

// Run implements orders.TxRunner with snapshot/restore rollback.
func (s *Store) Run(_ context.Context, fn func(l orders.Ledger) error) error {
	before := s.snapshot()
	if err := fn(s.Ledger()); err != nil {
		*s = before
		return err
	}
	return nil
}

// ── contractors ──

type contractorRepo struct{ s *Store }

func (s *Store) ContractorRepo() repository.ContractorRepository { return contractorRepo{s} }

func (r contractorRepo) Create(c *entity.Contractor) error {
	r.s.Contractors[c.ID] = *c
	return nil
}

func (r contractorRepo) GetByID(id string) (*entity.Contractor, error) {
	c, ok := r.s.Contractors[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r contractorRepo) List() ([]*entity.Contractor, error) {
	out := make([]*entity.Contractor, 0, len(r.s.Contractors))
	for _, c := range r.s.Contractors {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── stock items ──

type stockRepo struct{ s *Store }

func (s *Store) StockRepo() repository.StockItemRepository { return stockRepo{s} }

func (r stockRepo) Create(item *entity.StockItem) error {
	r.s.StockItems[item.ID] = *item
	return nil
}

func (r stockRepo) GetByID(id string) (*entity.StockItem, error) {
	item, ok := r.s.StockItems[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r stockRepo) GetForUpdate(id string) (*entity.StockItem, error) { return r.GetByID(id) }

func (r stockRepo) Save(item *entity.StockItem) error {
	r.s.StockItems[item.ID] = *item
	return nil
}

func (r stockRepo) Search(f repository.StockItemFilter) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, item := range r.s.StockItems {
		if !contains(item.Type, f.Type) || !contains(item.Quality, f.Quality) || !contains(item.ColorShade, f.ColorShade) {
			continue
		}
		item := item
		out = append(out, &item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ── orders ──

type orderRepo struct{ s *Store }

func (s *Store) OrderRepo() repository.OrderRepository { return orderRepo{s} }

func (r orderRepo) Create(o *entity.Order) error {
	r.s.Orders[o.ID] = *o
	return nil
}

func (r orderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.s.Orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r orderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.GetByID(id) }

func (r orderRepo) Save(o *entity.Order) error {
	r.s.Orders[o.ID] = *o
	return nil
}

func (r orderRepo) List(f repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.s.Orders {
		if f.Status != "" && !strings.EqualFold(o.Status, f.Status) {
			continue
		}
		if !contains(o.DesignNumber, f.DesignNumber) || !contains(o.ShadeCard, f.ShadeCard) || !contains(o.Quality, f.Quality) {
			continue
		}
		o := o
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r orderRepo) ListByContractor(contractorID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.s.Orders {
		if o.ContractorID == contractorID {
			o := o
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── stock transactions ──

type txnRepo struct{ s *Store }

func (s *Store) TxnRepo() repository.StockTransactionRepository { return txnRepo{s} }

func (r txnRepo) Create(t *entity.StockTransaction) error {
	r.s.Transactions = append(r.s.Transactions, *t)
	return nil
}

func (r txnRepo) GetByID(id string) (*entity.StockTransaction, error) {
	for _, t := range r.s.Transactions {
		if t.ID == id {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (r txnRepo) ListByOrder(orderID string) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, t := range r.s.Transactions {
		if t.OrderID == orderID {
			t := t
			out = append(out, &t)
		}
	}
	return out, nil
}

func (r txnRepo) detail(t entity.StockTransaction) *repository.DetailedTransaction {
	item := r.s.StockItems[t.StockID]
	order := r.s.Orders[t.OrderID]
	return &repository.DetailedTransaction{
		StockTransaction: t,
		StockType:        item.Type,
		StockQuality:     item.Quality,
		StockColorShade:  item.ColorShade,
		ContractorID:     order.ContractorID,
		OrderStatus:      order.Status,
	}
}

func (r txnRepo) ListDetailedByOrder(orderID string) ([]*repository.DetailedTransaction, error) {
	var out []*repository.DetailedTransaction
	for _, t := range r.s.Transactions {
		if t.OrderID == orderID {
			out = append(out, r.detail(t))
		}
	}
	return out, nil
}

func (r txnRepo) ListDetailedByContractor(contractorID string) ([]*repository.DetailedTransaction, error) {
	var out []*repository.DetailedTransaction
	for _, t := range r.s.Transactions {
		if r.s.Orders[t.OrderID].ContractorID == contractorID {
			out = append(out, r.detail(t))
		}
	}
	return out, nil
}

func (r txnRepo) ListDetailedOpen() ([]*repository.DetailedTransaction, error) {
	var out []*repository.DetailedTransaction
	for _, t := range r.s.Transactions {
		if r.s.Orders[t.OrderID].Status == entity.OrderStatusOpen {
			out = append(out, r.detail(t))
		}
	}
	return out, nil
}

func (r txnRepo) IssuedTotals(contractorID string) ([]*repository.IssuedTotal, error) {
	totals := map[string]*repository.IssuedTotal{}
	var keys []string
	for _, t := range r.s.Transactions {
		if t.Type != entity.TxnIssued {
			continue
		}
		order := r.s.Orders[t.OrderID]
		if contractorID != "" && order.ContractorID != contractorID {
			continue
		}
		key := order.ContractorID + "/" + t.StockID
		tot, ok := totals[key]
		if !ok {
			item := r.s.StockItems[t.StockID]
			contractor := r.s.Contractors[order.ContractorID]
			tot = &repository.IssuedTotal{
				ContractorID:    order.ContractorID,
				ContractorName:  contractor.Name,
				StockID:         t.StockID,
				StockType:       item.Type,
				StockQuality:    item.Quality,
				StockColorShade: item.ColorShade,
			}
			totals[key] = tot
			keys = append(keys, key)
		}
		tot.TotalIssuedKg = tot.TotalIssuedKg.Add(t.WeightKg)
	}
	out := make([]*repository.IssuedTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, totals[k])
	}
	return out, nil
}

func (r txnRepo) Save(txn *entity.StockTransaction) error {
	for i, t := range r.s.Transactions {
		if t.ID == txn.ID {
			r.s.Transactions[i] = *txn
			return nil
		}
	}
	return nil
}

func (r txnRepo) Delete(id string) error {
	for i, t := range r.s.Transactions {
		if t.ID == id {
			r.s.Transactions = append(r.s.Transactions[:i], r.s.Transactions[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── payments ──

type paymentRepo struct{ s *Store }

func (s *Store) PaymentRepo() repository.PaymentRepository { return paymentRepo{s} }

func (r paymentRepo) Create(p *entity.Payment) error {
	r.s.Payments[p.ID] = *p
	return nil
}

func (r paymentRepo) GetByID(id string) (*entity.Payment, error) {
	p, ok := r.s.Payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r paymentRepo) ListByOrder(orderID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.Payments {
		if p.OrderID == orderID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r paymentRepo) ListByContractor(contractorID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.Payments {
		if p.ContractorID == contractorID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r paymentRepo) Save(p *entity.Payment) error {
	r.s.Payments[p.ID] = *p
	return nil
}

func (r paymentRepo) Delete(id string) error {
	delete(r.s.Payments, id)
	return nil
}

// ── deductions ──

type deductionRepo struct{ s *Store }

func (s *Store) DeductionRepo() repository.DeductionRepository { return deductionRepo{s} }

func (r deductionRepo) Create(d *entity.Deduction) error {
	r.s.Deductions = append(r.s.Deductions, *d)
	return nil
}

func (r deductionRepo) ListByOrder(orderID string) ([]*entity.Deduction, error) {
	var out []*entity.Deduction
	for _, d := range r.s.Deductions {
		if d.OrderID == orderID {
			d := d
			out = append(out, &d)
		}
	}
	return out, nil
}

func (r deductionRepo) ListByContractor(contractorID string) ([]*entity.Deduction, error) {
	var out []*entity.Deduction
	for _, d := range r.s.Deductions {
		if r.s.Orders[d.OrderID].ContractorID == contractorID {
			d := d
			out = append(out, &d)
		}
	}
	return out, nil
}

// ── reassignments ──

type reassignmentRepo struct{ s *Store }

func (s *Store) ReassignmentRepo() repository.ReassignmentRepository { return reassignmentRepo{s} }

func (r reassignmentRepo) Create(a *entity.Reassignment) error {
	r.s.Reassignments = append(r.s.Reassignments, *a)
	return nil
}

func (r reassignmentRepo) ListByOrder(orderID string) ([]*entity.Reassignment, error) {
	var out []*entity.Reassignment
	for _, a := range r.s.Reassignments {
		if a.OrderID == orderID {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}
