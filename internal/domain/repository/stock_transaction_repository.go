package repository

import (
	"github.com/shopspring/decimal"

	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
)

// DetailedTransaction is a transaction joined with its stock description and
// owning order/contractor, the shape ledger views and reports consume.
type DetailedTransaction struct {
	entity.StockTransaction
	StockType       string
	StockQuality    string
	StockColorShade string
	ContractorID    string
	OrderStatus     string
}

// IssuedTotal is the ever-issued weight for one contractor/stock pairing.
type IssuedTotal struct {
	ContractorID    string
	ContractorName  string
	StockID         string
	StockType       string
	StockQuality    string
	StockColorShade string
	TotalIssuedKg   decimal.Decimal
}

// StockTransactionRepository is the persistence port for the transaction log.
type StockTransactionRepository interface {
	Create(txn *entity.StockTransaction) error
	GetByID(id string) (*entity.StockTransaction, error)
	ListByOrder(orderID string) ([]*entity.StockTransaction, error)
	ListDetailedByOrder(orderID string) ([]*DetailedTransaction, error)
	// ListDetailedByContractor returns the contractor's transactions across
	// all their orders, joined with stock descriptions.
	ListDetailedByContractor(contractorID string) ([]*DetailedTransaction, error)
	// ListDetailedOpen returns every transaction belonging to an Open order,
	// for the cross-contractor held-stock report.
	ListDetailedOpen() ([]*DetailedTransaction, error)
	// IssuedTotals aggregates total ever-issued kg per contractor and stock.
	// contractorID empty means all contractors.
	IssuedTotals(contractorID string) ([]*IssuedTotal, error)
	Save(txn *entity.StockTransaction) error
	Delete(id string) error
}
