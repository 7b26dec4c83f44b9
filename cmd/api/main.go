package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
	"github.com/virtpanel/credit-ledger/internal/domain/usecase/credit"
	"github.com/virtpanel/credit-ledger/internal/domain/usecase/payment"
	"github.com/virtpanel/credit-ledger/internal/domain/usecase/registration"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/database"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/logger"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/time"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ledgerConfig, err := ledgerConfigFrom(cfg)
	if err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(logger.ParseLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	conn, err := database.NewConnection(&cfg.Database, appLogger, tp)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	// Run migrations
	if err := migration.NewManager(conn.DB, appLogger).MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories and the unit of work
	accountRepo := repository.NewAccountRepository(conn.DB, appLogger)
	txRepo := repository.NewTransactionRepository(conn.DB, appLogger)
	uow := database.NewUnitOfWork(conn.DB, appLogger)

	// Initialize use cases
	ledger := credit.NewService(uow, accountRepo, txRepo, tp, appLogger, ledgerConfig)
	payments := payment.NewService(ledger, appLogger)
	registrations := registration.NewService(ledger, appLogger)

	// Initialize API handlers
	creditHandler := handler.NewCreditHandler(ledger, registrations, appLogger)
	paymentHandler := handler.NewPaymentHandler(payments, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, creditHandler, paymentHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// ledgerConfigFrom validates the ledger section and builds the usecase config
func ledgerConfigFrom(cfg *config.Config) (credit.Config, error) {
	ledgerConfig := credit.DefaultConfig()

	if cfg.Ledger.MonthlyGrantAmount != "" {
		amount, err := decimal.NewFromString(cfg.Ledger.MonthlyGrantAmount)
		if err != nil {
			return ledgerConfig, fmt.Errorf("invalid ledger.monthlyGrantAmount: %w", err)
		}
		if err := entity.ValidateAmount(amount); err != nil {
			return ledgerConfig, fmt.Errorf("invalid ledger.monthlyGrantAmount: %w", err)
		}
		ledgerConfig.MonthlyGrantAmount = amount
	}
	if cfg.Ledger.TransactionPageSize > 0 {
		ledgerConfig.DefaultPageSize = cfg.Ledger.TransactionPageSize
	}
	if cfg.Ledger.TransactionPageSizeCap > 0 {
		ledgerConfig.MaxPageSize = cfg.Ledger.TransactionPageSizeCap
	}
	if ledgerConfig.DefaultPageSize > ledgerConfig.MaxPageSize {
		return ledgerConfig, fmt.Errorf("ledger.transactionPageSize %d exceeds cap %d",
			ledgerConfig.DefaultPageSize, ledgerConfig.MaxPageSize)
	}

	return ledgerConfig, nil
}
