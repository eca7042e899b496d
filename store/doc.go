// Package store implements an embedded vector store: an ordered sequence of
// records kept in memory, ranked exhaustively by cosine similarity and
// written through to a snapshot.Persister after every mutation.
//
// Usage:
//
//	p := snapshot.NewFile("persisted_vectors.json")
//	s, err := store.New(ctx, p, store.WithCreateIfMissing())
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	if err := s.Insert(ctx, "doc-1", "hello", []float32{0.1, 0.2}, nil); err != nil {
//	    return err
//	}
//	matches, err := s.Search(ctx, []float32{0.1, 0.2}, store.DefaultTopK)
//
// Inserts and deletes take an exclusive lock and persist the full sequence
// before returning. Searches share a read lock and never persist.
package store
