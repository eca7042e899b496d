package vecutil

import (
	"context"
	"fmt"
)

// EmbedFunc converts free-form text into an embedding.
//
// Implementations can call any embedding provider (OpenAI, local model,
// other cloud APIs, etc.) as long as they return a slice of float32 values.
// The store itself remains embedding-agnostic and only depends on the
// numeric vectors.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

// Embedder converts a batch of texts into one embedding per text, in order.
type Embedder interface {
	// Embed returns len(texts) vectors.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the vector size produced by the model, or 0 when
	// unknown.
	Dimension() int
}

// FromFunc adapts a single-text EmbedFunc to an Embedder. Batches are embedded
// sequentially. dim may be 0 when the dimension is not known up front.
func FromFunc(fn EmbedFunc, dim int) Embedder {
	return funcEmbedder{fn: fn, dim: dim}
}

type funcEmbedder struct {
	fn  EmbedFunc
	dim int
}

func (f funcEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if f.fn == nil {
		return nil, fmt.Errorf("vecutil: EmbedFunc is nil")
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := f.fn(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (f funcEmbedder) Dimension() int { return f.dim }
