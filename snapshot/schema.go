package snapshot

import (
	"context"
	"database/sql"
)

const recordsSchema = `
CREATE TABLE IF NOT EXISTS records (
    seq INTEGER PRIMARY KEY,
    id TEXT NOT NULL,
    text TEXT,
    meta TEXT,
    embedding BLOB
);
CREATE TABLE IF NOT EXISTS snapshot_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    record_count INTEGER NOT NULL,
    saved_at TIMESTAMP NOT NULL
);
`

// EnsureSchema creates the records and snapshot_state tables in the provided
// database if they do not already exist. records has no uniqueness
// constraint on id: the sequence may hold duplicates. seq preserves order.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, recordsSchema)
	return err
}
