package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/mmynk/flavors/internal/models"
	"github.com/mmynk/flavors/internal/storage"
)

// newTestStore connects to FLAVORS_TEST_DATABASE_URL and starts from an empty
// flavors table. The table is dropped, so never point this at real data.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	url := os.Getenv("FLAVORS_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("FLAVORS_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := New(ctx, url)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.pool.Exec(ctx, "DROP TABLE IF EXISTS flavors"); err != nil {
		t.Fatalf("Failed to reset table: %v", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	return store
}

func TestNewRejectsBadURL(t *testing.T) {
	if _, err := New(context.Background(), "postgres://%zz"); err == nil {
		t.Error("Expected error for malformed url, got nil")
	}
}

func TestPostgresStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	name := "Cookie Dough"

	created, err := store.CreateFlavor(ctx, models.FlavorInput{Name: &name})
	if err != nil {
		t.Fatalf("CreateFlavor failed: %v", err)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Fatalf("Expected generated ID and timestamps, got %+v", created)
	}
	if created.IsFavorite {
		t.Error("Expected IsFavorite to default to false")
	}

	got, err := store.GetFlavor(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetFlavor failed: %v", err)
	}
	if got.Name != created.Name || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("GetFlavor mismatch: got %+v, want %+v", got, created)
	}

	renamed := "Cookie Dough Deluxe"
	fav := true
	updated, err := store.UpdateFlavor(ctx, created.ID, models.FlavorInput{Name: &renamed, IsFavorite: &fav})
	if err != nil {
		t.Fatalf("UpdateFlavor failed: %v", err)
	}
	if updated.Name != renamed || !updated.IsFavorite || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("Unexpected update result: %+v", updated)
	}

	if _, err := store.UpdateFlavor(ctx, created.ID+1000, models.FlavorInput{Name: &renamed}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if _, err := store.CreateFlavor(ctx, models.FlavorInput{}); err == nil {
		t.Error("Expected NOT NULL violation for missing name")
	}

	list, err := store.ListFlavors(ctx)
	if err != nil {
		t.Fatalf("ListFlavors failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("Expected 1 flavor, got %d", len(list))
	}

	if err := store.DeleteFlavor(ctx, created.ID); err != nil {
		t.Fatalf("DeleteFlavor failed: %v", err)
	}
	if err := store.DeleteFlavor(ctx, created.ID); err != nil {
		t.Errorf("Deleting a missing flavor should succeed, got %v", err)
	}
	if _, err := store.GetFlavor(ctx, created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}
