// Package memory is an in-process LedgerStore used by tests and as the
// zero-configuration default backend.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"earnings/internal/core"
	"earnings/internal/storage"
)

type Store struct {
	mu      sync.Mutex
	nextID  int64
	entries []core.Entry
}

func New() *Store {
	return &Store{nextID: 1}
}

func (s *Store) InsertEntry(_ context.Context, entry core.Entry) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID
	entry.CreatedAt = time.Now().UTC()
	s.nextID++
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *Store) GetEntry(_ context.Context, id int64) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Entry{}, fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
}

func (s *Store) ListOtherTypes(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	types := []string{}
	for _, e := range s.entries {
		if e.OtherType == "" || seen[e.OtherType] {
			continue
		}
		seen[e.OtherType] = true
		types = append(types, e.OtherType)
	}
	return types, nil
}

func (s *Store) Close() error {
	return nil
}

var _ storage.LedgerStore = (*Store)(nil)
