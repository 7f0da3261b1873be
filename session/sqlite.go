package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/internal/localstate"
)

// SQLiteStore persists keys in the kv table of a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open database and ensures the schema exists.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	if err := localstate.EnsureSchema(db); err != nil {
		return nil, fmt.Errorf("ensure session schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// OpenSQLiteStore opens <dataDir>/session.db; empty dataDir uses the default location.
func OpenSQLiteStore(dataDir string) (*SQLiteStore, error) {
	path, err := localstate.DBPath(dataDir)
	if err != nil {
		return nil, err
	}
	db, err := localstate.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	s, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

// Delete removes keys in one transaction so readers never see a partial session.
func (s *SQLiteStore) Delete(ctx context.Context, keys ...string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, k); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// HealthPing checks the database is reachable.
func (s *SQLiteStore) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }
