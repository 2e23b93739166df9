package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmynk/flavors/internal/models"
	"github.com/mmynk/flavors/internal/storage"
)

const flavorColumns = "id, name, COALESCE(is_favorite, false), created_at, updated_at"

// ListFlavors retrieves all flavors, newest first.
func (s *PostgresStore) ListFlavors(ctx context.Context) ([]models.Flavor, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+flavorColumns+" FROM flavors ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, wrapError("failed to list flavors", err)
	}

	flavors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Flavor, error) {
		return scanFlavor(row)
	})
	if err != nil {
		return nil, wrapError("failed to scan flavors", err)
	}
	if flavors == nil {
		flavors = []models.Flavor{}
	}
	return flavors, nil
}

// GetFlavor retrieves a flavor by ID.
func (s *PostgresStore) GetFlavor(ctx context.Context, id int64) (*models.Flavor, error) {
	flavor, err := scanFlavor(s.pool.QueryRow(ctx,
		"SELECT "+flavorColumns+" FROM flavors WHERE id = $1::bigint",
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("flavor %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, wrapError("failed to get flavor", err)
	}
	return &flavor, nil
}

// CreateFlavor inserts a new flavor. An absent is_favorite is stored as false.
func (s *PostgresStore) CreateFlavor(ctx context.Context, in models.FlavorInput) (*models.Flavor, error) {
	flavor, err := scanFlavor(s.pool.QueryRow(ctx,
		"INSERT INTO flavors (name, is_favorite) VALUES ($1, COALESCE($2, false)) RETURNING "+flavorColumns,
		in.Name, in.IsFavorite,
	))
	if err != nil {
		return nil, wrapError("failed to insert flavor", err)
	}
	return &flavor, nil
}

// UpdateFlavor overwrites name and is_favorite and refreshes updated_at.
// An absent is_favorite keeps the stored value.
func (s *PostgresStore) UpdateFlavor(ctx context.Context, id int64, in models.FlavorInput) (*models.Flavor, error) {
	flavor, err := scanFlavor(s.pool.QueryRow(ctx,
		`UPDATE flavors
		 SET name = $1, is_favorite = COALESCE($2, is_favorite), updated_at = now()
		 WHERE id = $3::bigint
		 RETURNING `+flavorColumns,
		in.Name, in.IsFavorite, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("flavor %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, wrapError("failed to update flavor", err)
	}
	return &flavor, nil
}

// DeleteFlavor removes a flavor by ID. Missing rows are ignored.
func (s *PostgresStore) DeleteFlavor(ctx context.Context, id int64) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM flavors WHERE id = $1::bigint", id); err != nil {
		return wrapError("failed to delete flavor", err)
	}
	return nil
}

func scanFlavor(row pgx.Row) (models.Flavor, error) {
	var flavor models.Flavor
	err := row.Scan(&flavor.ID, &flavor.Name, &flavor.IsFavorite, &flavor.CreatedAt, &flavor.UpdatedAt)
	return flavor, err
}
