package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"earnings/internal/ingest"
	"earnings/internal/metrics"
)

const maxBodyBytes = 1 << 20 // 1MB

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		slog.ErrorContext(r.Context(), "Read body error", "error", err)
		writeError(w, http.StatusBadRequest, "Valid isoDate required")
		return
	}

	entry, err := ingest.ParseSubmission(body)
	if err != nil {
		var vErr *ingest.ValidationError
		if errors.As(err, &vErr) {
			slog.WarnContext(r.Context(), "Submission rejected", "reason", vErr.Reason)
			metrics.EntryRejected("validation")
			writeError(w, http.StatusBadRequest, vErr.Reason)
			return
		}
		slog.ErrorContext(r.Context(), "Submission parse error", "error", err)
		writeError(w, http.StatusInternalServerError, "Insert failed")
		return
	}

	stored, err := s.ledger.CreateEntry(r.Context(), entry)
	if err != nil {
		slog.ErrorContext(r.Context(), "Entry insert error",
			"error", err, "entry_date", entry.EntryDate.ISO())
		writeError(w, http.StatusInternalServerError, "Insert failed")
		return
	}

	metrics.EntryCreated()
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleOtherTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	types, err := s.ledger.ListOtherTypes(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Other types list error", "error", err)
		writeError(w, http.StatusInternalServerError, "DB error")
		return
	}
	if types == nil {
		types = []string{}
	}

	writeJSON(w, http.StatusOK, types)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode error", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
