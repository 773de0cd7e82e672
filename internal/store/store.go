// Package store provides the process-wide holdings cache.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/niveshlab/folio/internal/domain"
)

// Loader produces the static holding list. file-backed in production,
// swapped for a stub in tests.
type Loader func(ctx context.Context) ([]domain.Holding, error)

// Store memoizes the parsed holdings for the process lifetime. It is
// populated on first access and safe for concurrent readers; the default
// refresh policy is "never".
type Store struct {
	loader Loader

	mu       sync.RWMutex
	loaded   bool
	holdings []domain.Holding
}

// New creates a Store with the given loader.
func New(loader Loader) *Store {
	if loader == nil {
		panic("store.New: loader is nil")
	}
	return &Store{loader: loader}
}

// Holdings returns the cached holding list, populating it on first call.
// A loader failure degrades to an empty list: snapshots are always built,
// with emptiness as the visible signal.
func (s *Store) Holdings(ctx context.Context) []domain.Holding {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.holdings
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.populate(ctx)
	}
	return s.holdings
}

// Refresh re-runs the loader, replacing the cached holdings. Not called by
// the default wiring; exists so a deployment with a non-static source can
// schedule it.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.populate(ctx)
}

func (s *Store) populate(ctx context.Context) {
	holdings, err := s.loader(ctx)
	if err != nil {
		slog.Warn("holdings load failed, serving empty portfolio", "error", err)
		holdings = nil
	}
	s.holdings = holdings
	s.loaded = true
}
