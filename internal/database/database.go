package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"list-market/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service wraps the postgres connection used by the postgres store
// backend.
type Service struct {
	db *sql.DB
}

// New opens a connection pool from the database config and verifies it.
func New(cfg config.DatabaseConfig) (*Service, error) {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.Schema,
	)

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Service{db: db}, nil
}

// DB exposes the underlying handle.
func (s *Service) DB() *sql.DB {
	return s.db
}

// Health reports connectivity and pool stats.
func (s *Service) Health(ctx context.Context) map[string]string {
	health := map[string]string{"status": "up"}

	if err := s.db.PingContext(ctx); err != nil {
		health["status"] = "down"
		health["error"] = err.Error()
		return health
	}

	stats := s.db.Stats()
	health["open_connections"] = fmt.Sprintf("%d", stats.OpenConnections)
	health["in_use"] = fmt.Sprintf("%d", stats.InUse)
	return health
}

// Close releases the connection pool.
func (s *Service) Close() error {
	return s.db.Close()
}
