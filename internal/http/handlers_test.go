package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"earnings/internal/core"
	"earnings/internal/services"
	"earnings/internal/storage"
)

// failingStore simulates an unreachable backend.
type failingStore struct{}

func (failingStore) InsertEntry(context.Context, core.Entry) (core.Entry, error) {
	return core.Entry{}, fmt.Errorf("%w: connection refused", storage.ErrStorage)
}

func (failingStore) GetEntry(context.Context, int64) (core.Entry, error) {
	return core.Entry{}, fmt.Errorf("%w: connection refused", storage.ErrStorage)
}

func (failingStore) ListOtherTypes(context.Context) ([]string, error) {
	return nil, fmt.Errorf("%w: connection refused", storage.ErrStorage)
}

func (failingStore) Close() error { return nil }

func TestCreateEntry_StorageFailure(t *testing.T) {
	srv := NewServer(":0", services.NewLedgerService(failingStore{}, nil))

	rec := postEntry(t, srv, `{"isoDate": "2026-02-01"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response decode: %v", err)
	}
	if got["error"] != "Insert failed" {
		t.Errorf("error = %q, want %q", got["error"], "Insert failed")
	}
}

func TestOtherTypes_StorageFailure(t *testing.T) {
	srv := NewServer(":0", services.NewLedgerService(failingStore{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/earnings/other-types", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response decode: %v", err)
	}
	if got["error"] != "DB error" {
		t.Errorf("error = %q, want %q", got["error"], "DB error")
	}
}
