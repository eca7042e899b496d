package engine

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

var filePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
}

// Open opens a SQLite database using the modernc.org/sqlite driver.
//
// For file-based databases, pass a path like "./db.sqlite". For in-memory
// databases, pass ":memory:"; the pool is then limited to one connection
// because every connection would otherwise see its own empty database.
// vec_cosine and vec_l2 are registered first so every connection has them.
func Open(dsn string) (*sql.DB, error) {
	if err := RegisterVectorFunctions(nil); err != nil {
		return nil, fmt.Errorf("engine: register functions: %w", err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == MemoryDSN {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// OpenFile opens the database file at path and applies WAL journaling and a
// busy timeout so a reader does not fail while the snapshot is rewritten.
func OpenFile(ctx context.Context, path string) (*sql.DB, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if path == MemoryDSN {
		return db, nil
	}
	for _, p := range filePragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("engine: %s failed: %w", p, err)
		}
	}
	return db, nil
}
