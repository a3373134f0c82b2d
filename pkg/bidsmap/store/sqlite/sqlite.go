// Package sqlite implements store.Store on a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/neurolab-io/bidsmap/pkg/bidsmap/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	raw_dir TEXT NOT NULL,
	heuristics TEXT,
	started_at TEXT NOT NULL,
	finished_at TEXT,
	folders INTEGER DEFAULT 0,
	accepted INTEGER DEFAULT 0,
	skipped INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS series (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	folder TEXT NOT NULL,
	modality TEXT NOT NULL,
	labels TEXT,
	attributes TEXT,
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_series_run ON series(run_id);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// RecordRun inserts a new run row
func (s *sqliteStore) RecordRun(ctx context.Context, r store.Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, raw_dir, heuristics, started_at) VALUES (?, ?, ?, ?)`,
		r.ID, r.RawDir, r.Heuristics, r.StartedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// FinishRun stores the final counters of a run
func (s *sqliteStore) FinishRun(ctx context.Context, id string, finishedAt time.Time, folders, accepted, skipped int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, folders = ?, accepted = ?, skipped = ? WHERE id = ?`,
		finishedAt.UTC().Format(time.RFC3339), folders, accepted, skipped, id)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// ListRuns returns all runs, newest first. Run IDs are ULIDs, so the id
// order is the time order.
func (s *sqliteStore) ListRuns(ctx context.Context) ([]store.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, raw_dir, heuristics, started_at, COALESCE(finished_at, ''), folders, accepted, skipped
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var r store.Run
		var started, finished string
		if err := rows.Scan(&r.ID, &r.RawDir, &r.Heuristics, &started, &finished,
			&r.Folders, &r.Accepted, &r.Skipped); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		if finished != "" {
			r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RecordSeries inserts an accepted series row
func (s *sqliteStore) RecordSeries(ctx context.Context, e store.SeriesEntry) error {
	labels, err := json.Marshal(e.Labels)
	if err != nil {
		return err
	}
	attrs, err := json.Marshal(e.Attributes)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO series (id, run_id, folder, modality, labels, attributes) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.RunID, e.Folder, e.Modality, string(labels), string(attrs))
	if err != nil {
		return fmt.Errorf("record series: %w", err)
	}
	return nil
}

// GetRunSeries returns the accepted series of a run in insertion order
func (s *sqliteStore) GetRunSeries(ctx context.Context, runID string) ([]store.SeriesEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, folder, modality, COALESCE(labels, '{}'), COALESCE(attributes, '{}')
		 FROM series WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []store.SeriesEntry
	for rows.Next() {
		var e store.SeriesEntry
		var labels, attrs string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Folder, &e.Modality, &labels, &attrs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(labels), &e.Labels); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(attrs), &e.Attributes); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
