package recent

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key         TEXT PRIMARY KEY,
    value       BLOB NOT NULL,
    updated_at  TEXT NOT NULL
);
`

// SQLiteBackend stores keys in a single kv table.
type SQLiteBackend struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path. ":memory:" is accepted.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("recent: opening database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serialises writers.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close() //nolint:errcheck // best-effort close
		return nil, fmt.Errorf("recent: pinging database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close() //nolint:errcheck // best-effort close
		return nil, fmt.Errorf("recent: creating schema: %w", err)
	}
	return &SQLiteBackend{conn: conn}, nil
}

// Get returns the value stored under key.
func (b *SQLiteBackend) Get(key string) ([]byte, error) {
	var value []byte
	err := b.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("recent: get %s: %w", key, err)
	}
	return value, nil
}

// Put inserts or replaces the value under key.
func (b *SQLiteBackend) Put(key string, value []byte) error {
	_, err := b.conn.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recent: put %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (b *SQLiteBackend) Delete(key string) error {
	res, err := b.conn.Exec(`DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("recent: delete %s: %w", key, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.conn.Close()
}
