package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"earnings/internal/amqp"
	"earnings/internal/core"
	"earnings/internal/storage/memory"
)

func TestExportWorker_AppendsEntryLine(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	d, _ := core.ParseDate("2026-02-01")
	entry, err := core.NewEntry(d, core.Amounts{TotalEarnings: core.Money{Cents: 50000}}, "Toll")
	if err != nil {
		t.Fatalf("NewEntry: %v", err)
	}
	stored, err := store.InsertEntry(ctx, entry)
	if err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	dir := t.TempDir()
	w := NewExportWorker(store, dir)

	if err := w.HandleEntryRecorded(ctx, &amqp.EntryRecordedMessage{ID: stored.ID}); err != nil {
		t.Fatalf("HandleEntryRecorded: %v", err)
	}

	path := filepath.Join(dir, "earnings-2026-02.jsonl")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("archive file not written: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		t.Fatal("archive file is empty")
	}
	var got map[string]any
	if err := json.Unmarshal(scanner.Bytes(), &got); err != nil {
		t.Fatalf("archive line decode: %v", err)
	}
	if got["entryDate"] != "2026-02-01" || got["totalEarnings"] != float64(500) {
		t.Errorf("archive line = %v", got)
	}
	if scanner.Scan() {
		t.Error("expected exactly one archive line")
	}
}

func TestExportWorker_AppendsMultipleLines(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	dir := t.TempDir()
	w := NewExportWorker(store, dir)

	for _, iso := range []string{"2026-02-01", "2026-02-02"} {
		d, _ := core.ParseDate(iso)
		entry, _ := core.NewEntry(d, core.Amounts{}, "")
		stored, err := store.InsertEntry(ctx, entry)
		if err != nil {
			t.Fatalf("InsertEntry: %v", err)
		}
		if err := w.HandleEntryRecorded(ctx, &amqp.EntryRecordedMessage{ID: stored.ID}); err != nil {
			t.Fatalf("HandleEntryRecorded: %v", err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "earnings-2026-02.jsonl"))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("archive has %d lines, want 2", lines)
	}
}

func TestExportWorker_UnknownEntryFails(t *testing.T) {
	w := NewExportWorker(memory.New(), t.TempDir())

	err := w.HandleEntryRecorded(context.Background(), &amqp.EntryRecordedMessage{ID: 999})
	if err == nil {
		t.Error("expected error for unknown entry id")
	}
}
