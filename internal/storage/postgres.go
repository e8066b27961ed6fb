package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore is a Store backed by the kv_entries table. All queries
// are parameterized.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a Store over the given database handle. The
// kv_entries table is managed by the goose migrations.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}

	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}
