package markers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const markerSchema = `
CREATE TABLE IF NOT EXISTS markers (
    key        TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL
);
`

// SQLiteStore keeps markers in a SQLite file so they survive restarts.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (and creates when missing) the marker database at dsn.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open marker database: %w", err)
	}
	// a :memory: database lives on a single connection
	db.SetMaxOpenConns(1)

	s := NewSQLiteStore(db)
	if err := s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore wraps an already opened database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, markerSchema); err != nil {
		return fmt.Errorf("failed to create markers table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Has(ctx context.Context, key string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM markers WHERE key = ?`, key).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("read marker: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO markers (key, created_at) VALUES (?, ?)`, key, s.now().UTC())
	if err != nil {
		return fmt.Errorf("write marker: %w", err)
	}
	return nil
}

// Prune deletes markers written before cutoff and returns how many went away.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM markers WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune markers: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
