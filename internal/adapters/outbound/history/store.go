// Package history persists validation runs in a SQLite database.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ff6editor/pluginvet/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout has fixed-width fractions so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements domain.HistoryStore on SQLite.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the database at dbPath. ":memory:" is
// accepted for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases from splitting per conn.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA busy_timeout=5000", "PRAGMA journal_mode=WAL"} {
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

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save records a run. Runs without an ID get a fresh UUID.
func (s *Store) Save(run *domain.ValidationRun) error {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	e := domain.EntryFromRun(run)

	_, err := s.db.Exec(`
		INSERT INTO validation_runs
			(run_id, plugin, dir, passed, errors, warnings, checks, commit_hash, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Plugin, e.Dir, e.Passed, e.Errors, e.Warnings, e.Checks, e.CommitHash,
		e.StartedAt.UTC().Format(timeLayout), e.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", e.RunID, err)
	}
	return nil
}

// List returns the most recent runs for plugin, newest first. An empty plugin
// lists every plugin. limit <= 0 means no limit.
func (s *Store) List(plugin string, limit int) ([]domain.HistoryEntry, error) {
	query := `
		SELECT run_id, plugin, dir, passed, errors, warnings, checks, commit_hash, started_at, duration_ms
		FROM validation_runs
		WHERE (? = '' OR plugin = ?)
		ORDER BY started_at DESC, rowid DESC`
	args := []any{plugin, plugin}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		var started string
		if err := rows.Scan(&e.RunID, &e.Plugin, &e.Dir, &e.Passed, &e.Errors, &e.Warnings,
			&e.Checks, &e.CommitHash, &started, &e.DurationMS); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if e.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parsing started_at of %s: %w", e.RunID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
