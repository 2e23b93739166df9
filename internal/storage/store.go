// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/flavors/internal/models"
)

// ErrNotFound is wrapped by store implementations when no row matches an id.
var ErrNotFound = errors.New("not found")

// FlavorStore defines the storage operations behind the flavors API.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer. Every data method issues exactly one
// statement.
type FlavorStore interface {
	// EnsureSchema creates the flavors table if it does not exist.
	EnsureSchema(ctx context.Context) error

	// ListFlavors returns all flavors, newest first.
	ListFlavors(ctx context.Context) ([]models.Flavor, error)

	// GetFlavor retrieves a flavor by its ID.
	// Returns an error wrapping ErrNotFound if no row matches.
	GetFlavor(ctx context.Context, id int64) (*models.Flavor, error)

	// CreateFlavor inserts a flavor and returns the stored row,
	// including the generated ID and timestamps.
	CreateFlavor(ctx context.Context, in models.FlavorInput) (*models.Flavor, error)

	// UpdateFlavor sets name and is_favorite, refreshes updated_at and
	// returns the stored row. Returns an error wrapping ErrNotFound if no
	// row matches.
	UpdateFlavor(ctx context.Context, id int64, in models.FlavorInput) (*models.Flavor, error)

	// DeleteFlavor removes the flavor if present. Deleting a missing ID is
	// not an error.
	DeleteFlavor(ctx context.Context, id int64) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
