package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"earnings/internal/amqp"
	"earnings/internal/backend"
	"earnings/internal/config"
	apphttp "earnings/internal/http"
	applog "earnings/internal/log"
	"earnings/internal/metrics"
	"earnings/internal/ratelimit"
	"earnings/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: "earnings",
	})
	applog.SetDefault(logger)

	logger.Info("Starting earnings server")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	metrics.Init()

	// Build the ledger store for the configured backend
	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateStore(backend.FromAppConfig(cfg))
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Storage cleanup failed", "error", err)
		}
	}()

	// Initialize AMQP client for publishing entry messages.
	// The export worker will consume these and archive entries to disk.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without export", "error", err)
			amqpClient = nil
		} else {
			logger.Info("AMQP client initialized - entries will be exported via earnings-worker")
		}
	} else {
		logger.Info("AMQP disabled - entries will not be exported")
	}

	ledger := services.NewLedgerService(result.Store, amqpClient)
	defer ledger.Close()

	srv := apphttp.NewServer(":"+cfg.Port, ledger)

	if limit := cfg.RateLimit(); limit > 0 {
		limiter := ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: limit})
		defer limiter.Stop()
		srv.RateLimiter = limiter
		logger.Info("Rate limiting enabled", "requests_per_minute", limit)
	}

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting earnings server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
