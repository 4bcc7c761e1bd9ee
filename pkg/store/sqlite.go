// Package store persists classification results in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/toyinlola/planetscope/pkg/interfaces"
)

// Limits for Recent.
const (
	DefaultLimit = 20
	MaxLimit     = 500
)

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements interfaces.HistoryStore on a SQLite database.
type Store struct {
	conn   *sql.DB
	dbPath string
}

var _ interfaces.HistoryStore = (*Store)(nil)

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: creating directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("store: setting pragma: %w", err)
		}
	}

	s := &Store{conn: conn, dbPath: path}
	if err := s.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("store: initializing schema: %w", err)
	}

	slog.Debug("history store opened", "path", path)
	return s, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS classifications (
			id TEXT PRIMARY KEY,
			tic_id TEXT NOT NULL,
			median_flux REAL NOT NULL,
			num_trees INTEGER NOT NULL,
			habitability REAL NOT NULL,
			life_type TEXT NOT NULL,
			resource_type TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_classifications_created_at ON classifications(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_classifications_tic_id ON classifications(tic_id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Save inserts r. Missing IDs and timestamps are filled in.
func (s *Store) Save(ctx context.Context, r *interfaces.Record) error {
	if r == nil {
		return fmt.Errorf("store: record must not be nil")
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO classifications (id, tic_id, median_flux, num_trees, habitability, life_type, resource_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.conn.ExecContext(ctx, query,
		r.ID,
		r.TicID,
		r.MedianFlux,
		r.NumTrees,
		r.Habitability,
		r.LifeType,
		r.ResourceType,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("store: saving %s: %w", r.TicID, err)
	}
	return nil
}

// Recent returns up to limit records, newest first. Non-positive limits
// select DefaultLimit; limits above MaxLimit are clamped.
func (s *Store) Recent(ctx context.Context, limit int) ([]interfaces.Record, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, tic_id, median_flux, num_trees, habitability, life_type, resource_type, created_at
		FROM classifications
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: querying history: %w", err)
	}
	defer rows.Close()

	var records []interfaces.Record
	for rows.Next() {
		var (
			r         interfaces.Record
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.TicID, &r.MedianFlux, &r.NumTrees, &r.Habitability,
			&r.LifeType, &r.ResourceType, &createdAt); err != nil {
			return nil, fmt.Errorf("store: scanning row: %w", err)
		}
		r.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("store: parsing created_at %q: %w", createdAt, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: reading history: %w", err)
	}
	return records, nil
}
