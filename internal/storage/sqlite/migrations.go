package sqlite

import (
	"context"
	"database/sql"
)

// schema mirrors the PostgreSQL table. SQLite ignores declared lengths, so
// the VARCHAR(255) limit is enforced with a CHECK. Timestamps are RFC 3339 text with
// millisecond precision so they sort lexically and parse with time.RFC3339Nano.
const schema = `
CREATE TABLE IF NOT EXISTS flavors (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(255) NOT NULL CHECK (length(name) <= 255),
    is_favorite BOOLEAN DEFAULT false,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
    updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_flavors_created_at ON flavors(created_at);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
