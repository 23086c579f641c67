package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ntzrbtr/adyen-shopware6/internal/application/services"
	"github.com/ntzrbtr/adyen-shopware6/internal/checkout"
	"github.com/ntzrbtr/adyen-shopware6/internal/config"
	"github.com/ntzrbtr/adyen-shopware6/internal/infrastructure/persistence/postgres"
	"github.com/ntzrbtr/adyen-shopware6/internal/interfaces/rest/handlers"
	"github.com/ntzrbtr/adyen-shopware6/internal/interfaces/rest/middleware"
	"github.com/ntzrbtr/adyen-shopware6/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting payment service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	_ = postgres.NewOrderRepository(db.Pool)
	transactionRepo := postgres.NewOrderTransactionRepository(db.Pool)
	responseRepo := postgres.NewPaymentResponseRepository(db.Pool)
	coordinator := postgres.NewTransactionCoordinator(db)

	checkoutClient := checkout.NewRetryClient(checkout.NewClient(cfg.Checkout), cfg.Retry)

	orderTxnService := services.NewOrderTransactionService(coordinator, transactionRepo, cfg.Giving, logger)
	responseHandler := services.NewPaymentResponseHandler(responseRepo, orderTxnService, logger)
	detailsService := services.NewPaymentDetailsService(responseRepo, checkoutClient, responseHandler, logger)
	statusService := services.NewPaymentStatusService(responseRepo, logger)
	methodsService := services.NewPaymentMethodsService(checkoutClient, cfg.Checkout, logger)
	redirectService := services.NewRedirectResultService(responseRepo, checkoutClient, responseHandler, cfg.Storefront, logger)

	h := handlers.NewPaymentHandler(
		methodsService,
		detailsService,
		statusService,
		orderTxnService,
		redirectService,
		logger,
	)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sweeper := worker.NewResponseSweeper(
		responseRepo,
		transactionRepo,
		cfg.Worker.Interval,
		cfg.Worker.SweepAge,
		cfg.Worker.BatchSize,
		logger,
	)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go sweeper.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
