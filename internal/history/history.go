// Package history persists run summaries to a local SQLite database.
// Only aggregate counts are stored; manuscript text and individual
// issues never touch disk.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/Iktahana/illusions-sub003/internal/lint"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL,
	source      TEXT NOT NULL DEFAULT '',
	preset      TEXT NOT NULL,
	paragraphs  INTEGER NOT NULL,
	issues      INTEGER NOT NULL,
	errors      INTEGER NOT NULL,
	warnings    INTEGER NOT NULL,
	infos       INTEGER NOT NULL,
	validated   INTEGER NOT NULL DEFAULT 0,
	discarded   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// Run is one correction pass over a manuscript.
type Run struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	// Source names the manuscript ("<stdin>" or a file path). The text
	// itself is never stored.
	Source     string
	Preset     string
	Paragraphs int
	Issues     int
	Errors     int
	Warnings   int
	Infos      int
	// Validated reports whether the LLM validation pass ran.
	Validated bool
	// Discarded counts issues the validation pass rejected.
	Discarded int
}

// Store records runs in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates the database (and its parent directory) if needed.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a run. An empty ID is assigned a fresh UUID; a zero
// StartedAt is set to now. Returns the stored run.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, duration_ms, source, preset,
			paragraphs, issues, errors, warnings, infos, validated, discarded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.Duration.Milliseconds(), run.Source,
		run.Preset, run.Paragraphs, run.Issues, run.Errors, run.Warnings,
		run.Infos, run.Validated, run.Discarded,
	)
	if err != nil {
		return run, fmt.Errorf("failed to record run: %w", err)
	}
	return run, nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, duration_ms, source, preset, paragraphs,
			issues, errors, warnings, infos, validated, discarded
		FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durMS int64
		if err := rows.Scan(&r.ID, &r.StartedAt, &durMS, &r.Source,
			&r.Preset, &r.Paragraphs, &r.Issues, &r.Errors, &r.Warnings,
			&r.Infos, &r.Validated, &r.Discarded); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Duration = time.Duration(durMS) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// Summarize tallies issues by severity into a run's count fields.
func (r *Run) Summarize(issues []lint.Issue) {
	r.Issues = len(issues)
	r.Errors, r.Warnings, r.Infos = 0, 0, 0
	for _, is := range issues {
		switch is.Severity {
		case lint.SeverityError:
			r.Errors++
		case lint.SeverityWarning:
			r.Warnings++
		default:
			r.Infos++
		}
	}
}
