package backend

import (
	"fmt"
	"log/slog"

	"earnings/internal/storage/memory"
	"earnings/internal/storage/postgres"
	"earnings/internal/storage/sqlite"
)

// Factory creates ledger stores based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateStore builds the store the configuration names. The handle is meant
// to be created once per process and passed to every consumer.
func (f *Factory) CreateStore(config Config) (*Result, error) {
	switch config.Type {
	case SQLiteBackend:
		repo, err := sqlite.NewRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case PostgresBackend:
		repo, err := postgres.NewRepository(config.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres repository: %w", err)
		}
		f.logger.Info("Initialized Postgres backend")
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case MemoryBackend:
		store := memory.New()
		f.logger.Info("Initialized memory backend")
		return &Result{Store: store, Cleanup: nil}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
