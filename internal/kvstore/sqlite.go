package kvstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	// Import the SQLite driver.
	_ "modernc.org/sqlite"
)

// SQLite is a Store implementation backed by a local SQLite database.
// It holds one row per key in a plain kv table. Like the file driver it
// serves a single local user; WAL mode with a single connection is
// sufficient and avoids locking issues.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) a SQLite-backed store at the given path.
//
// Note: with the `modernc.org/sqlite` driver, each pragma must be
// prefixed with `_pragma=`.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("kvstore: sqlite path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("kvstore: create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("kvstore: open sqlite store: %w", err)
	}

	// Single connection is optimal for a local single-user file with WAL.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("kvstore: create kv table: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Get implements Store.Get.
func (s *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kvstore: select value: %w", err)
	}
	return value, true, nil
}

// Set implements Store.Set using an upsert, so the write is a single
// atomic replace of the key's full value.
func (s *SQLite) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("kvstore: upsert value: %w", err)
	}
	return nil
}

// Close implements Store.Close.
func (s *SQLite) Close() error {
	return s.db.Close()
}
