// Package sqlite implements core.LongTermStore on an embedded SQLite
// database using the CGO-free modernc driver. Records are append-only rows
// keyed by user; schema creation is idempotent so opening an existing
// database is always safe.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS memories (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_memories_user ON memories (user_id, id);
`

// Store is a durable long-term memory store backed by a single SQLite file.
// database/sql serializes access to the underlying connection, so the store
// supports concurrent appends and reads across users.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at path and ensures the
// schema exists. The parent directory is created when missing.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewFromDB wraps an already opened database, ensuring the schema exists.
func NewFromDB(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Add durably appends a timestamped record for the user.
func (s *Store) Add(ctx context.Context, userID, content string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO memories (user_id, content, created_at) VALUES (?, ?, ?)`,
		userID, content, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert memory: %w", err)
	}
	return nil
}

// Get returns up to limit most-recent record contents for the user, newest
// first. Unknown users yield an empty slice.
func (s *Store) Get(ctx context.Context, userID string, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT content FROM memories WHERE user_id = ? ORDER BY id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query memories: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("sqlite: scan memory: %w", err)
		}
		out = append(out, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate memories: %w", err)
	}
	return out, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
