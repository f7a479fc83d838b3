// Package history records completed indexgen runs in a small SQLite
// database, so operators can see what was generated, where and when.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run is one recorded generator invocation.
type Run struct {
	ID           int64
	RunID        string // UUID assigned at the start of the run
	StartedAt    time.Time
	RootPath     string
	BasePath     string
	Mode         string // "filesystem" or "manifest"
	DirsIndexed  int64
	FilesWritten int64
	Skipped      int64
	DryRun       bool
	Duration     time.Duration
}

// Store manages the SQLite database of past runs.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so subsequent statements wait on locks instead of
	// failing when another run initializes the same file.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// RecordRun inserts one completed run.
func (s *Store) RecordRun(run Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (run_id, started_at, root_path, base_path, mode,
			dirs_indexed, files_written, skipped, dry_run, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.StartedAt.UTC(), run.RootPath, run.BasePath, run.Mode,
		run.DirsIndexed, run.FilesWritten, run.Skipped, run.DryRun,
		run.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, run_id, started_at, root_path, base_path, mode,
			dirs_indexed, files_written, skipped, dry_run, duration_ms
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var durationMs int64
		if err := rows.Scan(&run.ID, &run.RunID, &run.StartedAt, &run.RootPath,
			&run.BasePath, &run.Mode, &run.DirsIndexed, &run.FilesWritten,
			&run.Skipped, &run.DryRun, &durationMs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
