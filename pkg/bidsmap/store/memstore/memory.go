// Package memstore is an in-memory store.Store for tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/neurolab-io/bidsmap/internal/errs"
	"github.com/neurolab-io/bidsmap/pkg/bidsmap/store"
)

// Store is an in-memory implementation of store.Store
type Store struct {
	mu     sync.RWMutex
	runs   map[string]store.Run
	series map[string][]store.SeriesEntry
}

// New creates a new in-memory store
func New() *Store {
	return &Store{
		runs:   make(map[string]store.Run),
		series: make(map[string][]store.SeriesEntry),
	}
}

// Close implements store.Store
func (s *Store) Close() error { return nil }

// RecordRun implements store.Store
func (s *Store) RecordRun(ctx context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r
	return nil
}

// FinishRun implements store.Store
func (s *Store) FinishRun(ctx context.Context, id string, finishedAt time.Time, folders, accepted, skipped int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	if !ok {
		return errs.ErrNotFound
	}
	r.FinishedAt = finishedAt
	r.Folders = folders
	r.Accepted = accepted
	r.Skipped = skipped
	s.runs[id] = r
	return nil
}

// ListRuns implements store.Store; newest run first
func (s *Store) ListRuns(ctx context.Context) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID > runs[j].ID })
	return runs, nil
}

// RecordSeries implements store.Store
func (s *Store) RecordSeries(ctx context.Context, e store.SeriesEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[e.RunID] = append(s.series[e.RunID], e)
	return nil
}

// GetRunSeries implements store.Store
func (s *Store) GetRunSeries(ctx context.Context, runID string) ([]store.SeriesEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.series[runID]
	out := make([]store.SeriesEntry, len(entries))
	copy(out, entries)
	return out, nil
}
