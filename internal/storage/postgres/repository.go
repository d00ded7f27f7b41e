// Package postgres implements the LedgerStore over PostgreSQL via lib/pq.
// This is the production backend; the schema mirrors the original
// daily_earnings table with numeric(10,2) amount columns.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"earnings/internal/core"
	"earnings/internal/storage"

	_ "github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

// NewRepository connects to the database, verifies the connection and
// applies pending migrations. Constructed once at startup; the pool inside
// *sql.DB is reused across all requests.
func NewRepository(databaseURL string) (*Repository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
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
	petrol_cost, cash_on_delivery, cash_deposit,
	other_cash, other_type, total_earnings, daily_withdraw_amount
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, created_at`

func (r *Repository) InsertEntry(ctx context.Context, entry core.Entry) (core.Entry, error) {
	err := r.db.QueryRowContext(ctx, insertQuery,
		entry.EntryDate.ISO(),
		entry.EntryMonth,
		entry.EntryYear,
		entry.PetrolCost.String(),
		entry.CashOnDelivery.String(),
		entry.CashDeposit.String(),
		entry.OtherCash.String(),
		nullableType(entry.OtherType),
		entry.TotalEarnings.String(),
		entry.DailyWithdrawal.String(),
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return core.Entry{}, fmt.Errorf("%w: insert entry: %v", storage.ErrStorage, err)
	}

	slog.InfoContext(ctx, "Entry saved to Postgres",
		"id", entry.ID,
		"entry_date", entry.EntryDate.ISO(),
		"total_earnings", entry.TotalEarnings.String())

	return entry, nil
}

// Amounts come back as cents so the decimal columns never pass through
// floating point.
const getQuery = `
SELECT id, entry_date,
	(petrol_cost * 100)::bigint, (cash_on_delivery * 100)::bigint,
	(cash_deposit * 100)::bigint, (other_cash * 100)::bigint,
	other_type,
	(total_earnings * 100)::bigint, (daily_withdraw_amount * 100)::bigint,
	created_at
FROM daily_earnings WHERE id = $1`

func (r *Repository) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	var (
		rebuilt   core.Entry
		amounts   core.Amounts
		otherType sql.NullString
	)

	err := r.db.QueryRowContext(ctx, getQuery, id).Scan(
		&rebuilt.ID,
		&rebuilt.EntryDate.Time,
		&amounts.PetrolCost.Cents,
		&amounts.CashOnDelivery.Cents,
		&amounts.CashDeposit.Cents,
		&amounts.OtherCash.Cents,
		&otherType,
		&amounts.TotalEarnings.Cents,
		&amounts.DailyWithdrawal.Cents,
		&rebuilt.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Entry{}, fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return core.Entry{}, fmt.Errorf("%w: get entry: %v", storage.ErrStorage, err)
	}

	entry, err := core.NewEntry(rebuilt.EntryDate, amounts, otherType.String)
	if err != nil {
		return core.Entry{}, fmt.Errorf("%w: rebuild entry: %v", storage.ErrStorage, err)
	}
	entry.ID = rebuilt.ID
	entry.CreatedAt = rebuilt.CreatedAt
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
