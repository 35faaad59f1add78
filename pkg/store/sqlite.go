package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteVersion = 1

// SQLiteDocuments keeps every document as a row of a single table.
type SQLiteDocuments struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dbPath and runs migrations.
func NewSQLite(dbPath string) (*SQLiteDocuments, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("store: create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: exec pragma %q: %w", p, err)
		}
	}

	s := &SQLiteDocuments{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

// NewMemorySQLite creates an in-memory database for testing.
func NewMemorySQLite() (*SQLiteDocuments, error) {
	return NewSQLite(":memory:")
}

func (s *SQLiteDocuments) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= sqliteVersion {
		return nil
	}
	if version < 1 {
		const ddl = `
		CREATE TABLE IF NOT EXISTS documents (
			name        TEXT PRIMARY KEY,
			body        BLOB NOT NULL,
			updated_at  TEXT NOT NULL
		);`
		if _, err := s.db.Exec(ddl); err != nil {
			return err
		}
	}
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", sqliteVersion))
	return err
}

func (s *SQLiteDocuments) ReadDocument(ctx context.Context, name string) ([]byte, error) {
	key, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	var body []byte
	err = s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return body, nil
}

func (s *SQLiteDocuments) WriteDocument(ctx context.Context, name string, data []byte) error {
	key, err := cleanName(name)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteDocuments) DeleteDocument(ctx context.Context, name string) error {
	key, err := cleanName(name)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, key); err != nil {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteDocuments) ListDocuments(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM documents WHERE substr(name, 1, length(?)) = ? ORDER BY name`, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("store: list documents: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteDocuments) Close() error {
	return s.db.Close()
}
