// Package sqlite implements the LedgerStore over a local SQLite file using
// the pure-Go modernc driver. Amounts are stored as integer cents; dates and
// timestamps as ISO text.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"earnings/internal/core"
	"earnings/internal/storage"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

// NewRepository opens (creating if needed) the database file, verifies the
// connection and applies pending migrations. The returned handle is meant to
// be built once at startup and shared for the process lifetime.
func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const insertQuery = `
INSERT INTO daily_earnings (
	entry_date, entry_month, entry_year,
	petrol_cost_cents, cash_on_delivery_cents, cash_deposit_cents,
	other_cash_cents, other_type, total_earnings_cents,
	daily_withdraw_cents, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`

func (r *Repository) InsertEntry(ctx context.Context, entry core.Entry) (core.Entry, error) {
	entry.CreatedAt = time.Now().UTC()

	err := r.db.QueryRowContext(ctx, insertQuery,
		entry.EntryDate.ISO(),
		entry.EntryMonth,
		entry.EntryYear,
		entry.PetrolCost.Cents,
		entry.CashOnDelivery.Cents,
		entry.CashDeposit.Cents,
		entry.OtherCash.Cents,
		nullableType(entry.OtherType),
		entry.TotalEarnings.Cents,
		entry.DailyWithdrawal.Cents,
		entry.CreatedAt.Format(time.RFC3339),
	).Scan(&entry.ID)
	if err != nil {
		return core.Entry{}, fmt.Errorf("%w: insert entry: %v", storage.ErrStorage, err)
	}

	slog.InfoContext(ctx, "Entry saved to SQLite",
		"id", entry.ID,
		"entry_date", entry.EntryDate.ISO(),
		"total_earnings", entry.TotalEarnings.String())

	return entry, nil
}

const getQuery = `
SELECT id, entry_date, entry_year,
	petrol_cost_cents, cash_on_delivery_cents, cash_deposit_cents,
	other_cash_cents, other_type, total_earnings_cents,
	daily_withdraw_cents, created_at
FROM daily_earnings WHERE id = ?`

func (r *Repository) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	var (
		rawDate    string
		rawCreated string
		otherType  sql.NullString
		entryYear  int
		amounts    core.Amounts
		entryID    int64
	)

	err := r.db.QueryRowContext(ctx, getQuery, id).Scan(
		&entryID,
		&rawDate,
		&entryYear,
		&amounts.PetrolCost.Cents,
		&amounts.CashOnDelivery.Cents,
		&amounts.CashDeposit.Cents,
		&amounts.OtherCash.Cents,
		&otherType,
		&amounts.TotalEarnings.Cents,
		&amounts.DailyWithdrawal.Cents,
		&rawCreated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Entry{}, fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return core.Entry{}, fmt.Errorf("%w: get entry: %v", storage.ErrStorage, err)
	}

	date, err := core.ParseDate(rawDate)
	if err != nil {
		return core.Entry{}, fmt.Errorf("%w: stored date %q: %v", storage.ErrStorage, rawDate, err)
	}

	entry, err := core.NewEntry(date, amounts, otherType.String)
	if err != nil {
		return core.Entry{}, fmt.Errorf("%w: rebuild entry: %v", storage.ErrStorage, err)
	}
	entry.ID = entryID
	created, err := time.Parse(time.RFC3339, rawCreated)
	if err != nil {
		return core.Entry{}, fmt.Errorf("%w: stored timestamp %q: %v", storage.ErrStorage, rawCreated, err)
	}
	entry.CreatedAt = created
	return entry, nil
}

const otherTypesQuery = `
SELECT DISTINCT other_type FROM daily_earnings
WHERE other_type IS NOT NULL AND other_type <> ''`

func (r *Repository) ListOtherTypes(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, otherTypesQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: list other types: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: scan other type: %v", storage.ErrStorage, err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate other types: %v", storage.ErrStorage, err)
	}
	return types, nil
}

func nullableType(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ storage.LedgerStore = (*Repository)(nil)
