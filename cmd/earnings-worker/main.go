package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"earnings/internal/amqp"
	"earnings/internal/backend"
	"earnings/internal/config"
	applog "earnings/internal/log"
	"earnings/internal/metrics"
	"earnings/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: "earnings-worker",
	})
	applog.SetDefault(logger)

	logger.Info("Starting earnings-worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	metrics.Init()

	// The worker reads entries back from the same store the server writes to.
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

	exportWorker := worker.NewExportWorker(result.Store, cfg.ExportDir)
	logger.Info("Export worker configured",
		"export_dir", cfg.ExportDir,
		"backend", cfg.DataBackend,
		"queue", cfg.AMQPQueue)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqp.ConsumeWithReconnect(gctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, exportWorker.HandleEntryRecorded)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
