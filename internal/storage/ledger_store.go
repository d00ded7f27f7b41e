// Package storage defines the persistence port for the daily ledger. The
// sqlite, postgres and memory subpackages implement it; callers receive an
// explicitly constructed store handle at startup and reuse it for the life
// of the process.
package storage

import (
	"context"
	"errors"

	"earnings/internal/core"
)

// ErrStorage marks infrastructure-caused failures (backend unreachable,
// constraint violation). Callers surface it as a generic server error and
// never retry.
var ErrStorage = errors.New("storage failure")

// ErrNotFound is returned by GetEntry when no row matches the id.
var ErrNotFound = errors.New("entry not found")

// LedgerStore is the persistence port for daily earnings entries. Entries
// are write-once: there is no update or delete.
type LedgerStore interface {
	// InsertEntry persists one entry, assigning its id and creation
	// timestamp, and returns the stored entry including both. A duplicate
	// entry date is permitted and produces a second independent row.
	InsertEntry(ctx context.Context, entry core.Entry) (core.Entry, error)

	// GetEntry returns a single entry by id.
	GetEntry(ctx context.Context, id int64) (core.Entry, error)

	// ListOtherTypes returns the distinct non-empty otherType labels ever
	// recorded, without duplicates, in unspecified order. Empty slice when
	// no entry carries a label.
	ListOtherTypes(ctx context.Context) ([]string, error)

	Close() error
}
