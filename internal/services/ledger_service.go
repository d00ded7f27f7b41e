package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"earnings/internal/amqp"
	"earnings/internal/cache"
	"earnings/internal/core"
	"earnings/internal/storage"
)

const (
	otherTypesKey = "other_types"
	otherTypesTTL = 30 * time.Second
)

// LedgerService orchestrates entry creation across storage and the optional
// AMQP export queue. The local write always wins: publish failures are
// logged and swallowed.
type LedgerService struct {
	store      storage.LedgerStore
	amqpClient *amqp.Client
	otherTypes *cache.LRUCache[[]string]
}

func NewLedgerService(store storage.LedgerStore, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		store:      store,
		amqpClient: amqpClient,
		otherTypes: cache.New[[]string](1, otherTypesTTL),
	}
}

// CreateEntry persists an entry and notifies the export queue.
func (s *LedgerService) CreateEntry(ctx context.Context, entry core.Entry) (core.Entry, error) {
	stored, err := s.store.InsertEntry(ctx, entry)
	if err != nil {
		return core.Entry{}, fmt.Errorf("save entry: %w", err)
	}

	if err := s.publishEntryRecorded(ctx, stored.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish entry recorded message",
			"id", stored.ID, "error", err)
		// Don't fail the request - the entry is saved locally
	}

	// A new label may invalidate the cached type list.
	if stored.OtherType != "" {
		s.otherTypes.Delete(otherTypesKey)
	}

	return stored, nil
}

// ListOtherTypes returns the distinct category labels recorded so far.
// The result is cached briefly since the list changes rarely. Callers get
// their own copy; the cached slice is never handed out.
func (s *LedgerService) ListOtherTypes(ctx context.Context) ([]string, error) {
	if types, ok := s.otherTypes.Get(otherTypesKey); ok {
		return slices.Clone(types), nil
	}

	types, err := s.store.ListOtherTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list other types: %w", err)
	}
	s.otherTypes.Set(otherTypesKey, slices.Clone(types))
	return types, nil
}

func (s *LedgerService) publishEntryRecorded(ctx context.Context, id int64) error {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping entry recorded message")
		return nil
	}
	return s.amqpClient.PublishEntryRecorded(ctx, id)
}

// Close closes both storage and AMQP connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
