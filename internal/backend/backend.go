// Package backend selects and constructs the ledger store from
// configuration.
package backend

import (
	"earnings/internal/config"
	"earnings/internal/storage"
)

// CleanupFunc releases the resources behind a store.
type CleanupFunc func() error

// Result contains the constructed store and its cleanup function.
type Result struct {
	Store   storage.LedgerStore
	Cleanup CleanupFunc
}

// Type identifies a storage backend.
type Type string

const (
	MemoryBackend   Type = "memory"
	SQLiteBackend   Type = "sqlite"
	PostgresBackend Type = "postgres"
)

func (t Type) String() string {
	return string(t)
}

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend, PostgresBackend:
		return true
	default:
		return false
	}
}

// Config holds what the factory needs to build a store.
type Config struct {
	Type         Type
	SQLiteDBPath string
	DatabaseURL  string
}

// FromAppConfig converts the application config to a backend config.
func FromAppConfig(appConfig *config.Config) Config {
	return Config{
		Type:         Type(appConfig.DataBackend),
		SQLiteDBPath: appConfig.SQLiteDBPath,
		DatabaseURL:  appConfig.DatabaseURL,
	}
}
