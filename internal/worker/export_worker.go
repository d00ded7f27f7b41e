// Package worker implements the export side of the entry pipeline: it
// consumes entry-recorded messages and appends each entry as one JSON line
// to a per-month archive file.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"earnings/internal/amqp"
	"earnings/internal/metrics"
	"earnings/internal/storage"
)

// ExportWorker turns entry-recorded messages into archive lines. Files are
// named earnings-<year>-<month>.jsonl under the export directory.
type ExportWorker struct {
	store storage.LedgerStore
	dir   string

	mu sync.Mutex // serializes appends across handler invocations
}

func NewExportWorker(store storage.LedgerStore, dir string) *ExportWorker {
	return &ExportWorker{
		store: store,
		dir:   dir,
	}
}

// HandleEntryRecorded processes one message: load the entry, append it to
// the archive. Errors bubble up so the consumer requeues the message.
func (w *ExportWorker) HandleEntryRecorded(ctx context.Context, msg *amqp.EntryRecordedMessage) error {
	entry, err := w.store.GetEntry(ctx, msg.ID)
	if err != nil {
		metrics.ExportFailed()
		return fmt.Errorf("get entry from storage: %w", err)
	}

	if err := w.appendEntry(entry.EntryYear, entry.EntryDate.Month(), entry); err != nil {
		metrics.ExportFailed()
		return fmt.Errorf("append entry to archive: %w", err)
	}

	metrics.EntryExported()
	slog.InfoContext(ctx, "Entry exported",
		"id", entry.ID,
		"entry_date", entry.EntryDate.ISO())
	return nil
}

func (w *ExportWorker) appendEntry(year, month int, entry any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("earnings-%04d-%02d.jsonl", year, month))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open archive file: %w", err)
	}
	defer f.Close()

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write archive line: %w", err)
	}
	return nil
}
