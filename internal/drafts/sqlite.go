package drafts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/go-logr/logr"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS drafts (
	key        TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// SQLiteStore keeps drafts in a single SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	log logr.Logger
	now func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// DefaultPath returns $XDG_DATA_HOME/assetview/drafts.db, falling back to
// ~/.local/share.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "assetview", "drafts.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "assetview", "drafts.db"), nil
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string, log logr.Logger) (*SQLiteStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create drafts directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open drafts database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.V(1).Info("opened drafts store", "path", path)
	return &SQLiteStore{db: db, log: log, now: time.Now}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (Draft, error) {
	var (
		d  = Draft{Key: key}
		ms int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT body, updated_at FROM drafts WHERE key = ?`, key,
	).Scan(&d.Body, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return Draft{}, ErrNotFound
	}
	if err != nil {
		return Draft{}, fmt.Errorf("failed to read draft %q: %w", key, err)
	}
	d.UpdatedAt = time.UnixMilli(ms).UTC()
	return d, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, body string) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drafts (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		key, body, s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save draft %q: %w", key, err)
	}
	s.log.V(1).Info("saved draft", "key", key, "bytes", len(body))
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete draft %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete draft %q: %w", key, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, prefix string) ([]Draft, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, body, updated_at FROM drafts WHERE substr(key, 1, ?) = ? ORDER BY key`,
		utf8.RuneCountInString(prefix), prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var out []Draft
	for rows.Next() {
		var (
			d  Draft
			ms int64
		)
		if err := rows.Scan(&d.Key, &d.Body, &ms); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		d.UpdatedAt = time.UnixMilli(ms).UTC()
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return out, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
