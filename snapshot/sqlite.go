package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/viant/vecstore/engine"
	"github.com/viant/vecstore/vector"
)

const sqliteLocation = "sqlite:records"

// SQLite persists the record sequence as ordered rows of the records table.
// Each Save deletes and rewrites all rows inside one transaction, so readers
// observe either the previous or the new sequence.
type SQLite struct {
	db   *sql.DB
	owns bool
}

// NewSQLite creates a SQLite-backed Persister over an existing database. It
// ensures the schema exists. The caller keeps ownership of db.
func NewSQLite(ctx context.Context, db *sql.DB) (*SQLite, error) {
	if db == nil {
		return nil, fmt.Errorf("snapshot: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, vector.NewPersistenceError("open", sqliteLocation, err)
	}
	return &SQLite{db: db}, nil
}

// OpenSQLite opens (or creates) the database file at path and returns a
// persister that closes it on Close.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := engine.OpenFile(ctx, path)
	if err != nil {
		return nil, vector.NewPersistenceError("open", path, err)
	}
	s, err := NewSQLite(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.owns = true
	return s, nil
}

// DB returns the underlying database handle.
func (s *SQLite) DB() *sql.DB { return s.db }

// Save replaces all rows with records.
func (s *SQLite) Save(ctx context.Context, records []vector.Record) error {
	return vector.NewPersistenceError("save", sqliteLocation, s.save(ctx, records))
}

func (s *SQLite) save(ctx context.Context, records []vector.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records(seq, id, text, meta, embedding) VALUES(?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		meta, err := encodeMeta(r.Metadata)
		if err != nil {
			return fmt.Errorf("snapshot: record %q metadata: %w", r.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, i, r.ID, r.Text, meta, vector.EncodeEmbedding(r.Vector)); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO snapshot_state(id, record_count, saved_at) VALUES(1, ?, ?)`,
		len(records), time.Now().UTC()); err != nil {
		return err
	}
	return tx.Commit()
}

// Load returns the rows ordered by seq. A database that has never been saved
// to wraps ErrNotFound.
func (s *SQLite) Load(ctx context.Context) ([]vector.Record, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, vector.NewPersistenceError("load", sqliteLocation, err)
	}
	return records, nil
}

func (s *SQLite) load(ctx context.Context) ([]vector.Record, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT record_count FROM snapshot_state WHERE id = 1`).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, text, meta, embedding FROM records ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]vector.Record, 0, count)
	for rows.Next() {
		var (
			r    vector.Record
			text sql.NullString
			meta sql.NullString
			emb  []byte
		)
		if err := rows.Scan(&r.ID, &text, &meta, &emb); err != nil {
			return nil, err
		}
		r.Text = text.String
		if r.Vector, err = vector.DecodeEmbedding(emb); err != nil {
			return nil, fmt.Errorf("snapshot: record %q: %w", r.ID, err)
		}
		if r.Metadata, err = decodeMeta(meta.String); err != nil {
			return nil, fmt.Errorf("snapshot: record %q metadata: %w", r.ID, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) != count {
		return nil, fmt.Errorf("snapshot: expected %d records, found %d", count, len(records))
	}
	return records, nil
}

// Close closes the database when it was opened by OpenSQLite.
func (s *SQLite) Close() error {
	if s.owns {
		return s.db.Close()
	}
	return nil
}

func encodeMeta(meta map[string]any) (string, error) {
	if len(meta) == 0 {
		return "", nil
	}
	b, err := gojson.Marshal(meta)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeMeta(raw string) (map[string]any, error) {
	meta := map[string]any{}
	if raw == "" {
		return meta, nil
	}
	dec := gojson.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&meta); err != nil {
		return nil, err
	}
	normalizeNumbers(meta)
	return meta, nil
}

// Ensure SQLite satisfies the Persister interface.
var _ Persister = (*SQLite)(nil)
