package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/flavors/internal/config"
	"github.com/mmynk/flavors/internal/middleware"
	"github.com/mmynk/flavors/internal/service"
	"github.com/mmynk/flavors/internal/storage"
	"github.com/mmynk/flavors/internal/storage/postgres"
	"github.com/mmynk/flavors/internal/storage/sqlite"
	"github.com/mmynk/flavors/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	health := service.NewHealth(store)
	if err := health.InitSchema(ctx); err != nil {
		if cfg.RequireSchema {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		// Matches the historical behavior: keep serving, report not ready.
		slog.Error("Failed to initialize schema, continuing without it", "error", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := newHandler(store, health, reg)

	// Wrap with h2c so HTTP/2 clients can connect without TLS
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openStore picks the backend from DATABASE_URL.
func openStore(ctx context.Context, cfg *config.Config) (storage.FlavorStore, error) {
	driver, dsn, err := cfg.Database()
	if err != nil {
		return nil, err
	}

	switch driver {
	case config.DriverSQLite:
		store, err := sqlite.New(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		slog.Info("Storage initialized", "driver", driver, "database", dsn)
		return store, nil
	default:
		store, err := postgres.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		slog.Info("Storage initialized", "driver", driver)
		return store, nil
	}
}

// newHandler wires every route and the shared middleware.
func newHandler(store storage.FlavorStore, health *service.Health, reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()

	service.NewFlavorService(store).Register(mux)
	health.Register(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	metrics := middleware.NewMetrics(reg)
	return middleware.Logging(metrics.Wrap(mux))
}
