package bruteforce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/vecstore/index"
	"github.com/viant/vecstore/vector"
)

func positions(hits []index.Hit) []int {
	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.Position
	}
	return out
}

func TestQuery_OrdersByScore(t *testing.T) {
	idx := New([][]float32{
		{0, 1},
		{1, 0},
		{1, 1},
	})
	hits, err := idx.Query([]float32{1, 0}, 3, nil)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, []int{1, 2, 0}, positions(hits))
	assert.Equal(t, 1.0, hits[0].Score)
	assert.Equal(t, 0.0, hits[2].Score)
}

func TestQuery_TiesKeepBuildOrder(t *testing.T) {
	idx := New([][]float32{
		{0, 1},
		{2, 0},
		{0, 0},
		{1, 0},
		{5, 0},
		{0, 0},
	})
	hits, err := idx.Query([]float32{1, 0}, 10, nil)
	require.NoError(t, err)
	// Three exact 1.0 scores, then three 0 scores (orthogonal and zero vectors).
	assert.Equal(t, []int{1, 3, 4, 0, 2, 5}, positions(hits))
}

func TestQuery_TopKBounds(t *testing.T) {
	idx := New([][]float32{{1, 0}, {0, 1}, {1, 1}})

	hits, err := idx.Query([]float32{1, 0}, 1, nil)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = idx.Query([]float32{1, 0}, 100, nil)
	require.NoError(t, err)
	assert.Len(t, hits, 3)

	for _, k := range []int{0, -1} {
		hits, err = idx.Query([]float32{1, 0}, k, nil)
		require.NoError(t, err)
		assert.NotNil(t, hits)
		assert.Empty(t, hits)
	}
}

func TestQuery_Accept(t *testing.T) {
	idx := New([][]float32{{1, 0}, {1, 0}, {0, 1}})
	hits, err := idx.Query([]float32{1, 0}, 5, func(pos int) bool { return pos != 0 })
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, positions(hits))
}

func TestQuery_DimensionMismatch(t *testing.T) {
	idx := New([][]float32{{1, 0}, {1, 0, 0}})
	_, err := idx.Query([]float32{1, 0}, 5, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, vector.ErrDimensionMismatch)

	// A mismatching vector that is filtered out is never compared.
	hits, err := idx.Query([]float32{1, 0}, 5, func(pos int) bool { return pos == 0 })
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestQuery_MatchesCosineSimilarity(t *testing.T) {
	vecs := [][]float32{{0.3, -0.2, 0.9}, {1, 2, 3}, {0, 0, 0}}
	q := []float32{0.5, 0.5, -0.1}
	idx := New(vecs)
	hits, err := idx.Query(q, len(vecs), nil)
	require.NoError(t, err)
	for _, h := range hits {
		want, err := vector.CosineSimilarity(q, vecs[h.Position])
		require.NoError(t, err)
		assert.Equal(t, want, h.Score)
	}
}

func TestBuild_Empty(t *testing.T) {
	idx := New(nil)
	assert.Equal(t, 0, idx.Len())
	hits, err := idx.Query([]float32{1}, 3, nil)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
