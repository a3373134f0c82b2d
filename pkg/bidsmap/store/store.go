// Package store persists mapping-run provenance: which raw folders were
// scanned, which series were accepted and the labels they received.
package store

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Store is the interface for persisting and querying mapping runs
type Store interface {
	Close() error

	// Runs
	RecordRun(ctx context.Context, r Run) error
	FinishRun(ctx context.Context, id string, finishedAt time.Time, folders, accepted, skipped int) error
	ListRuns(ctx context.Context) ([]Run, error)

	// Series
	RecordSeries(ctx context.Context, s SeriesEntry) error
	GetRunSeries(ctx context.Context, runID string) ([]SeriesEntry, error)
}

// Run is one invocation of the mapper over a raw data folder
type Run struct {
	ID         string
	RawDir     string
	Heuristics string
	StartedAt  time.Time
	FinishedAt time.Time
	Folders    int
	Accepted   int
	Skipped    int
}

// SeriesEntry is one accepted series within a run
type SeriesEntry struct {
	ID         string
	RunID      string
	Folder     string
	Modality   string
	Labels     map[string]string
	Attributes map[string]string
}

var runEntropy = ulid.Monotonic(rand.Reader, 0)

// NewRunID returns a fresh, time-ordered run identifier
func NewRunID() string {
	return ulid.MustNew(ulid.Now(), runEntropy).String()
}

// NewSeriesID returns a fresh series identifier
func NewSeriesID() string {
	return uuid.NewString()
}
