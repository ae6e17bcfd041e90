package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mirzacarpets/ledger-api/internal/application/contractors"
	"github.com/mirzacarpets/ledger-api/internal/application/orders"
	"github.com/mirzacarpets/ledger-api/internal/application/payments"
	"github.com/mirzacarpets/ledger-api/internal/application/reports"
	"github.com/mirzacarpets/ledger-api/internal/application/stock"
)

// RouterDeps holds the use cases the router wires to handlers.
type RouterDeps struct {
	ContractorUC *contractors.UseCase
	StockUC      *stock.UseCase
	OrderUC      *orders.UseCase
	PaymentUC    *payments.UseCase
	ReportUC     *reports.UseCase
}

// Router registers all API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	contractorHandler := NewContractorHandler(deps.ContractorUC)
	contractorGroup := api.Group("/contractors")
	contractorGroup.Post("/", contractorHandler.Create)
	contractorGroup.Get("/", contractorHandler.List)
	contractorGroup.Get("/:id", contractorHandler.Details)
	contractorGroup.Get("/:id/statement", contractorHandler.Statement)

	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup := api.Group("/stock-items")
	stockGroup.Post("/", stockHandler.Create)
	stockGroup.Get("/", stockHandler.Search)
	stockGroup.Get("/:id", stockHandler.GetByID)
	stockGroup.Put("/:id", stockHandler.Update)

	orderHandler := NewOrderHandler(deps.OrderUC)
	orderGroup := api.Group("/orders")
	orderGroup.Post("/", orderHandler.Create)
	orderGroup.Get("/", orderHandler.List)
	orderGroup.Get("/:id", orderHandler.GetByID)
	orderGroup.Put("/:id", orderHandler.Update)
	orderGroup.Post("/:id/issue-stock", orderHandler.IssueStock)
	orderGroup.Post("/:id/complete", orderHandler.Complete)
	orderGroup.Post("/:id/reassign", orderHandler.Reassign)
	orderGroup.Post("/:id/return-stock", orderHandler.ReturnStock)
	orderGroup.Get("/:id/financials", orderHandler.Financials)
	orderGroup.Get("/:id/payments", orderHandler.Payments)

	txnGroup := api.Group("/transactions")
	txnGroup.Put("/:id", orderHandler.UpdateTransaction)
	txnGroup.Delete("/:id", orderHandler.DeleteTransaction)

	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	paymentGroup := api.Group("/payments")
	paymentGroup.Post("/", paymentHandler.Record)
	paymentGroup.Get("/:id", paymentHandler.GetByID)
	paymentGroup.Put("/:id", paymentHandler.Update)
	paymentGroup.Delete("/:id", paymentHandler.Delete)

	reportHandler := NewReportHandler(deps.ReportUC)
	reportGroup := api.Group("/reports")
	reportGroup.Get("/held-stock", reportHandler.HeldStock)
	reportGroup.Get("/issue-history", reportHandler.IssueHistory)
	reportGroup.Get("/export", reportHandler.Export)
}
