// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runlog keeps a local SQLite ledger of ingestion runs.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-digest/internal/pipeline"
)

// Log records run summaries and per-paper outcomes. It is a local debugging
// aid; the object store remains the authoritative record of what was
// processed.
type Log struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path, creating the schema if
// needed.
func Open(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Log{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

func (l *Log) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			listed INTEGER NOT NULL,
			stored INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_items (
			run_id TEXT NOT NULL REFERENCES runs(id),
			paper_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			detail TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_items_run_id ON run_items(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record writes one run and its per-paper outcomes, returning the new run ID.
func (l *Log) Record(ctx context.Context, startedAt, finishedAt time.Time, result pipeline.Result) (string, error) {
	runID := uuid.NewString()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, listed, stored, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID,
		startedAt.UTC().Format(time.RFC3339),
		finishedAt.UTC().Format(time.RFC3339),
		result.Listed, result.Stored, result.Skipped, result.Failed,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, item := range result.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_items (run_id, paper_id, outcome, detail) VALUES (?, ?, ?, ?)`,
			runID, item.ArxivID, string(item.Outcome), item.Detail,
		)
		if err != nil {
			return "", fmt.Errorf("inserting item %s: %w", item.ArxivID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RunSummary is one recorded run.
type RunSummary struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Listed     int
	Stored     int
	Skipped    int
	Failed     int
}

// Recent returns up to limit runs, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, listed, stored, skipped, failed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.Listed, &r.Stored, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("parsing started_at: %w", err)
		}
		if r.FinishedAt, err = time.Parse(time.RFC3339, finished); err != nil {
			return nil, fmt.Errorf("parsing finished_at: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Items returns the per-paper outcomes recorded for one run.
func (l *Log) Items(ctx context.Context, runID string) ([]pipeline.ItemResult, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT paper_id, outcome, detail FROM run_items WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []pipeline.ItemResult
	for rows.Next() {
		var item pipeline.ItemResult
		var outcome string
		if err := rows.Scan(&item.ArxivID, &outcome, &item.Detail); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Outcome = pipeline.Outcome(outcome)
		items = append(items, item)
	}
	return items, rows.Err()
}
