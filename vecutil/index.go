package vecutil

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/viant/vecstore/store"
	"github.com/viant/vecstore/vector"
)

const (
	// DefaultBatchSize is the number of texts sent to the embedder per call.
	DefaultBatchSize = 32

	// DefaultParallelism is the number of batches embedded concurrently.
	DefaultParallelism = 4
)

// Index provides a text-level API on top of a store: callers supply free-form
// text and optional metadata, the index computes embeddings and delegates
// storage and ranking to the store.
type Index struct {
	Store       *store.Store
	Embedder    Embedder
	BatchSize   int
	Parallelism int
	// Limiter paces embedder calls when set.
	Limiter *rate.Limiter
}

// IndexOption configures an Index.
type IndexOption func(*Index)

// WithBatchSize sets the number of texts embedded per call.
func WithBatchSize(n int) IndexOption {
	return func(ix *Index) { ix.BatchSize = n }
}

// WithParallelism sets how many batches are embedded concurrently.
func WithParallelism(n int) IndexOption {
	return func(ix *Index) { ix.Parallelism = n }
}

// WithRateLimit limits embedder calls to rps per second with the given burst.
// rps <= 0 disables pacing.
func WithRateLimit(rps float64, burst int) IndexOption {
	return func(ix *Index) {
		if rps <= 0 {
			ix.Limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		ix.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewIndex constructs an Index over s using embedder.
func NewIndex(s *store.Store, embedder Embedder, opts ...IndexOption) (*Index, error) {
	if s == nil {
		return nil, fmt.Errorf("vecutil: store is nil")
	}
	if embedder == nil {
		return nil, fmt.Errorf("vecutil: embedder is nil")
	}
	ix := &Index{Store: s, Embedder: embedder, BatchSize: DefaultBatchSize, Parallelism: DefaultParallelism}
	for _, opt := range opts {
		opt(ix)
	}
	if ix.BatchSize <= 0 {
		ix.BatchSize = DefaultBatchSize
	}
	if ix.Parallelism <= 0 {
		ix.Parallelism = 1
	}
	return ix, nil
}

// Document is a text to index. An empty ID is replaced by a random UUID.
type Document struct {
	ID       string
	Text     string
	Metadata map[string]any
}

// AddTexts embeds docs and inserts them into the store in input order. It
// returns the ids used, including generated ones. Embedding happens before
// any insert, so an embedding failure leaves the store untouched.
func (ix *Index) AddTexts(ctx context.Context, docs []Document) ([]string, error) {
	if len(docs) == 0 {
		return []string{}, nil
	}
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	vectors, err := ix.embedAll(ctx, texts)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		id := d.ID
		if id == "" {
			id = uuid.NewString()
		}
		if err := ix.Store.Insert(ctx, id, d.Text, vectors[i], d.Metadata); err != nil {
			return ids[:i], fmt.Errorf("vecutil: insert %q: %w", id, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// embedAll splits texts into batches and embeds them concurrently, keeping
// the result aligned with texts.
func (ix *Index) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.Parallelism)

	for start := 0; start < len(texts); start += ix.BatchSize {
		start := start // per-iteration copy (go < 1.22 loop semantics)
		end := min(start+ix.BatchSize, len(texts))
		g.Go(func() error {
			vecs, err := ix.embed(gctx, texts[start:end])
			if err != nil {
				return err
			}
			copy(out[start:end], vecs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (ix *Index) embed(ctx context.Context, texts []string) ([][]float32, error) {
	if ix.Limiter != nil {
		if err := ix.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	vecs, err := ix.Embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("vecutil: embed: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("vecutil: embedder returned %d vectors for %d texts", len(vecs), len(texts))
	}
	if dim := ix.Embedder.Dimension(); dim > 0 {
		for _, v := range vecs {
			if len(v) != dim {
				return nil, &vector.DimensionMismatchError{Expected: dim, Actual: len(v)}
			}
		}
	}
	return vecs, nil
}

// QueryText embeds query and returns the k most similar records. k <= 0
// yields an empty result.
func (ix *Index) QueryText(ctx context.Context, query string, k int) ([]vector.Match, error) {
	vecs, err := ix.embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return ix.Store.Search(ctx, vecs[0], k)
}

// DeleteDocuments removes every record with one of the given ids.
func (ix *Index) DeleteDocuments(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := ix.Store.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
