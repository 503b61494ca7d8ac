package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FyliaCare/WarehousePOS-sub000/api/routes"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/cashiers"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/catalog"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/inventory"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/sales"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/terminal"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/config"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/logger"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/metrics"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/migrate"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/outbox"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	manager, err := terminal.NewManager(
		catalog.NewRepository(dbClient.DB()),
		sales.NewRepository(dbClient.DB()),
		inventory.NewRepository(dbClient.DB()),
		dbClient,
		outboxService,
		checkoutMetrics,
		logg,
		cfg.Checkout.CommitTimeout,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create terminal manager", err)
		os.Exit(1)
	}

	cashierService, err := cashiers.NewService(cashiers.NewRepository(dbClient.DB()), cfg.JWT, cfg.POS, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cashier service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, dbClient, cashierService, manager,
			sales.NewRepository(dbClient.DB()),
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
	}
}
