package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/flavors/internal/models"
	"github.com/mmynk/flavors/internal/storage"
)

const flavorColumns = "id, name, COALESCE(is_favorite, 0), created_at, updated_at"

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ListFlavors retrieves all flavors, newest first.
func (s *SQLiteStore) ListFlavors(ctx context.Context) ([]models.Flavor, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+flavorColumns+" FROM flavors ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list flavors: %w", err)
	}
	defer rows.Close()

	flavors := []models.Flavor{}
	for rows.Next() {
		flavor, err := scanFlavor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flavor: %w", err)
		}
		flavors = append(flavors, *flavor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate flavors: %w", err)
	}

	return flavors, nil
}

// GetFlavor retrieves a flavor by ID.
func (s *SQLiteStore) GetFlavor(ctx context.Context, id int64) (*models.Flavor, error) {
	flavor, err := scanFlavor(s.db.QueryRowContext(ctx,
		"SELECT "+flavorColumns+" FROM flavors WHERE id = ?",
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("flavor %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flavor: %w", err)
	}
	return flavor, nil
}

// CreateFlavor inserts a new flavor. An absent is_favorite is stored as false.
func (s *SQLiteStore) CreateFlavor(ctx context.Context, in models.FlavorInput) (*models.Flavor, error) {
	flavor, err := scanFlavor(s.db.QueryRowContext(ctx,
		"INSERT INTO flavors (name, is_favorite) VALUES (?, COALESCE(?, false)) RETURNING "+flavorColumns,
		nullString(in.Name), nullBool(in.IsFavorite),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert flavor: %w", err)
	}
	return flavor, nil
}

// UpdateFlavor overwrites name and is_favorite and refreshes updated_at.
// An absent is_favorite keeps the stored value.
func (s *SQLiteStore) UpdateFlavor(ctx context.Context, id int64, in models.FlavorInput) (*models.Flavor, error) {
	flavor, err := scanFlavor(s.db.QueryRowContext(ctx,
		`UPDATE flavors
		 SET name = ?, is_favorite = COALESCE(?, is_favorite),
		     updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		 WHERE id = ?
		 RETURNING `+flavorColumns,
		nullString(in.Name), nullBool(in.IsFavorite), id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("flavor %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update flavor: %w", err)
	}
	return flavor, nil
}

// DeleteFlavor removes a flavor by ID. Missing rows are ignored.
func (s *SQLiteStore) DeleteFlavor(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM flavors WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete flavor: %w", err)
	}
	return nil
}

func scanFlavor(row rowScanner) (*models.Flavor, error) {
	var (
		flavor               models.Flavor
		createdAt, updatedAt string
	)
	if err := row.Scan(&flavor.ID, &flavor.Name, &flavor.IsFavorite, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if flavor.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if flavor.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &flavor, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func parseTimestamp(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", v, err)
	}
	return t, nil
}
