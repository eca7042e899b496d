package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/viant/vecstore/index"
	"github.com/viant/vecstore/index/bruteforce"
	"github.com/viant/vecstore/snapshot"
	"github.com/viant/vecstore/vector"
)

// DefaultTopK is the result count callers use when they have no preference.
const DefaultTopK = 5

// Filter reports whether a record takes part in a search.
type Filter func(r vector.Record) bool

// Store is an in-memory, write-through vector store. It is safe for
// concurrent use within one process.
type Store struct {
	mu        sync.RWMutex
	records   []vector.Record
	index     index.Index
	persister snapshot.Persister
	opts      options
	logger    *Logger
}

// New constructs a store backed by persister. Unless WithRecords supplies a
// non-empty initial sequence, the persisted document is loaded and any load
// failure is returned as a *vector.PersistenceError.
func New(ctx context.Context, persister snapshot.Persister, opts ...Option) (*Store, error) {
	if persister == nil {
		return nil, fmt.Errorf("store: persister is nil")
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.dimension < 0 {
		return nil, fmt.Errorf("store: invalid dimension %d", o.dimension)
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.index == nil {
		o.index = bruteforce.New(nil)
	}
	s := &Store{persister: persister, opts: o, logger: o.logger, index: o.index}

	if len(o.initial) > 0 {
		s.records = vector.CloneRecords(o.initial)
		s.logger.LogLoad(ctx, "initial", len(s.records), nil)
	} else {
		records, err := persister.Load(ctx)
		switch {
		case err == nil:
			s.records = records
			s.logger.LogLoad(ctx, "persisted", len(records), nil)
		case o.createIfMissing && errors.Is(err, snapshot.ErrNotFound):
			s.records = []vector.Record{}
			s.logger.LogLoad(ctx, "empty", 0, nil)
		default:
			err = vector.NewPersistenceError("load", "", err)
			s.logger.LogLoad(ctx, "persisted", 0, err)
			return nil, err
		}
	}
	for i := range s.records {
		if s.records[i].Metadata == nil {
			s.records[i].Metadata = map[string]any{}
		}
	}
	if err := s.reindex(s.records); err != nil {
		return nil, err
	}
	return s, nil
}

// Insert appends a record and persists the full sequence. Duplicate ids are
// accepted unless WithRejectDuplicateIDs is set. When the flush fails the
// record stays in memory and the *vector.PersistenceError is returned.
func (s *Store) Insert(ctx context.Context, id, text string, vec []float32, metadata map[string]any) error {
	rec := vector.Record{ID: id, Text: text, Vector: vec, Metadata: metadata}.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.validate(rec); err != nil {
		s.logger.LogInsert(ctx, id, len(vec), err)
		return err
	}
	records := append(s.records[:len(s.records):len(s.records)], rec)
	if err := s.reindex(records); err != nil {
		s.logger.LogInsert(ctx, id, len(vec), err)
		return err
	}
	s.records = records
	err := s.flush(ctx)
	s.logger.LogInsert(ctx, id, len(vec), err)
	return err
}

func (s *Store) validate(rec vector.Record) error {
	if d := s.opts.dimension; d > 0 && len(rec.Vector) != d {
		return &vector.DimensionMismatchError{Expected: d, Actual: len(rec.Vector), ID: rec.ID}
	}
	if s.opts.rejectDuplicateIDs {
		for i := range s.records {
			if s.records[i].ID == rec.ID {
				return fmt.Errorf("store: insert %q: %w", rec.ID, vector.ErrDuplicateID)
			}
		}
	}
	return nil
}

// Delete removes every record with id, keeping the order of the rest, and
// persists the sequence. A missing id is not an error and still persists.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	match := func(r vector.Record) bool { return r.ID == id }
	removed := 0
	if slices.ContainsFunc(s.records, match) {
		records := slices.DeleteFunc(slices.Clone(s.records), match)
		if err := s.reindex(records); err != nil {
			s.logger.LogDelete(ctx, id, 0, err)
			return err
		}
		removed = len(s.records) - len(records)
		s.records = records
	}
	err := s.flush(ctx)
	s.logger.LogDelete(ctx, id, removed, err)
	return err
}

// Search returns up to topK records ordered by decreasing cosine similarity
// to query. Records with equal scores keep their insertion order. A stored
// vector whose length differs from query aborts the search with a
// *vector.DimensionMismatchError. topK <= 0 yields an empty result.
func (s *Store) Search(ctx context.Context, query []float32, topK int) ([]vector.Match, error) {
	return s.SearchWithFilter(ctx, query, topK, nil)
}

// SearchWithFilter is Search restricted to records accepted by filter. A nil
// filter accepts every record. Rejected records are not scored.
func (s *Store) SearchWithFilter(ctx context.Context, query []float32, topK int, filter Filter) ([]vector.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var accept index.Accept
	if filter != nil {
		accept = func(pos int) bool { return filter(s.records[pos]) }
	}
	hits, err := s.index.Query(query, topK, accept)
	if err != nil {
		err = fmt.Errorf("store: search: %w", err)
		s.logger.LogSearch(ctx, topK, 0, err)
		return nil, err
	}
	out := make([]vector.Match, len(hits))
	for i, h := range hits {
		out[i] = vector.Match{Record: s.records[h.Position].Clone(), Score: h.Score}
	}
	s.logger.LogSearch(ctx, topK, len(out), nil)
	return out, nil
}

// Flush persists the current sequence. It lets callers retry after a failed
// write-through.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush(ctx)
}

func (s *Store) flush(ctx context.Context) error {
	err := vector.NewPersistenceError("save", "", s.persister.Save(ctx, s.records))
	s.logger.LogFlush(ctx, len(s.records), err)
	return err
}

// Len returns the number of records, duplicates included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Records returns a deep copy of the sequence in insertion order.
func (s *Store) Records() []vector.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return vector.CloneRecords(s.records)
}

// Close releases the persister.
func (s *Store) Close() error {
	return s.persister.Close()
}

// reindex loads the vectors of records into the ranking index. On failure
// the index keeps its previous contents. Callers hold the write lock.
func (s *Store) reindex(records []vector.Record) error {
	vecs := make([][]float32, len(records))
	for i := range records {
		vecs[i] = records[i].Vector
	}
	if err := s.index.Build(vecs); err != nil {
		return fmt.Errorf("store: build index: %w", err)
	}
	return nil
}
