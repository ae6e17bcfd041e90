package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mirzacarpets/ledger-api/internal/application/contractors"
	"github.com/mirzacarpets/ledger-api/internal/application/orders"
	"github.com/mirzacarpets/ledger-api/internal/application/payments"
	"github.com/mirzacarpets/ledger-api/internal/application/reports"
	"github.com/mirzacarpets/ledger-api/internal/application/stock"
	infraexcel "github.com/mirzacarpets/ledger-api/internal/infrastructure/excel"
	infrapdf "github.com/mirzacarpets/ledger-api/internal/infrastructure/pdf"
	"github.com/mirzacarpets/ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/mirzacarpets/ledger-api/internal/interfaces/http"
	"github.com/mirzacarpets/ledger-api/pkg/config"
	"github.com/mirzacarpets/ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	contractorRepo := postgres.NewContractorRepository(pool)
	stockRepo := postgres.NewStockItemRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txnRepo := postgres.NewStockTransactionRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	deductionRepo := postgres.NewDeductionRepository(pool)
	reassignmentRepo := postgres.NewReassignmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	orderUC := orders.New(
		txRunner, orderRepo, stockRepo, txnRepo,
		paymentRepo, deductionRepo, reassignmentRepo, contractorRepo,
	)
	stockUC := stock.New(stockRepo)
	paymentUC := payments.New(paymentRepo, orderRepo, contractorRepo)

	// PDF: printable contractor account statement
	statementGen := infrapdf.NewStatementGenerator()
	contractorUC := contractors.New(
		contractorRepo, orderRepo, txnRepo, paymentRepo, deductionRepo, statementGen,
	)

	exporter := infraexcel.NewExporter()
	reportUC := reports.New(
		contractorRepo, stockRepo, orderRepo, txnRepo,
		paymentRepo, deductionRepo, exporter,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Carpet Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ContractorUC: contractorUC,
		StockUC:      stockUC,
		OrderUC:      orderUC,
		PaymentUC:    paymentUC,
		ReportUC:     reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
