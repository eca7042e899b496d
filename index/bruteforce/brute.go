package bruteforce

import (
	"sort"

	"github.com/viant/vecstore/index"
	"github.com/viant/vecstore/vector"
)

// Index is a brute-force vector index implementing cosine similarity.
type Index struct {
	vecs  [][]float32
	norms []float64
}

// New returns an index built over vectors.
func New(vectors [][]float32) *Index {
	i := &Index{}
	i.load(vectors)
	return i
}

// Build loads vectors and precomputes their magnitudes. The slice is copied
// but the vectors themselves are shared and must not be mutated afterwards.
// It never fails.
func (i *Index) Build(vectors [][]float32) error {
	i.load(vectors)
	return nil
}

func (i *Index) load(vectors [][]float32) {
	i.vecs = append([][]float32(nil), vectors...)
	i.norms = make([]float64, len(vectors))
	for j, v := range vectors {
		i.norms[j] = vector.Norm(v)
	}
}

// Len returns the number of indexed vectors.
func (i *Index) Len() int { return len(i.vecs) }

// Query returns the top-k accepted vectors by cosine similarity. A stored
// vector whose length differs from the query aborts the query with a
// *vector.DimensionMismatchError; zero-magnitude vectors score 0.
func (i *Index) Query(query []float32, k int, accept index.Accept) ([]index.Hit, error) {
	if k <= 0 || len(i.vecs) == 0 {
		return []index.Hit{}, nil
	}
	qn := vector.Norm(query)
	hits := make([]index.Hit, 0, len(i.vecs))
	for j, v := range i.vecs {
		if accept != nil && !accept(j) {
			continue
		}
		if len(v) != len(query) {
			return nil, &vector.DimensionMismatchError{Expected: len(query), Actual: len(v)}
		}
		hits = append(hits, index.Hit{Position: j, Score: vector.CosineWithNorms(query, qn, v, i.norms[j])})
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Score > hits[b].Score })
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Ensure Index satisfies the index.Index interface.
var _ index.Index = (*Index)(nil)
