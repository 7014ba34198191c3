package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/hermes/internal/bootstrap"
	"github.com/UnknownOlympus/hermes/internal/config"
	"github.com/UnknownOlympus/hermes/internal/metrics"
	"github.com/UnknownOlympus/hermes/internal/repository"
	"github.com/UnknownOlympus/hermes/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// main is the entry point of the routing service.
func main() {
	// Canceled on SIGINT or SIGTERM for a graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := bootstrap.SetupLogger(cfg.Env, os.Stdout)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb, logger)

	network, err := bootstrap.LoadNetwork(ctx, repo, cfg.Routing)
	if err != nil {
		log.Fatalf("Failed to load road network: %v", err)
	}
	inventory, err := bootstrap.LoadInventory(ctx, logger, repo, network, cfg.Stock)
	if err != nil {
		log.Fatalf("Failed to load blood centers: %v", err)
	}
	logger.InfoContext(ctx, "Routing data loaded",
		"nodes", network.NodeCount(), "edges", network.EdgeCount(), "facilities", inventory.Len())

	geoProvider, cacheCloser, err := bootstrap.NewGeocoder(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}
	defer cacheCloser.Close()
	logger.InfoContext(ctx, "Geocoding provider initialized",
		"type", cfg.Provider.Type, "cache", cfg.Redis.Addr != "")

	routingService := service.NewRoutingService(
		logger, repo, geoProvider, network, inventory, appMetrics, bootstrap.ServiceSettings(cfg),
	)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	server := newMonitoringServer(ctx, logger, reg, dtb, cfg.Port)
	go func() {
		logger.InfoContext(ctx, "Starting monitoring server", "port", cfg.Port)
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "Monitoring server failed", "error", errServe)
		}
	}()

	routingService.Run(ctx)

	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	const shutdownTimeout = 5 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "Monitoring server shutdown failed", "error", err)
	}

	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

type pinger interface {
	Ping(ctx context.Context) error
}

// newMonitoringServer serves /healthz, which pings the database, and /metrics.
func newMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb pinger,
	port int,
) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, req *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := dtb.Ping(req.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	const (
		readTimeout  = 5 * time.Second
		writeTimeout = 10 * time.Second
	)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}
