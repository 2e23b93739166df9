// Package postgres provides a PostgreSQL-backed implementation of the
// storage.FlavorStore interface on top of a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmynk/flavors/internal/storage"
)

var _ storage.FlavorStore = (*PostgresStore)(nil)

// PostgresStore implements storage.FlavorStore using a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// New parses the connection string and builds a pool. Connections are
// established lazily, so an unreachable server is only reported by Ping or
// the first query.
func New(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema creates the flavors table if it is missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return wrapError("failed to run migrations", err)
	}
	return nil
}

// Ping acquires a connection and round-trips to the server.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes every pooled connection.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// wrapError adds the SQLSTATE code of server-side failures so constraint
// violations are recognizable in logs.
func wrapError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s (sqlstate %s): %w", msg, pgErr.Code, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
