package vector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"Orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"Identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"Opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"Scaled", []float32{1, 2, 3}, []float32{2, 4, 6}, 1},
		{"Partial", []float32{1, 1}, []float32{1, 0}, 0.7071067811865475},
		{"ZeroLeft", []float32{0, 0}, []float32{1, 2}, 0},
		{"ZeroRight", []float32{3, 4}, []float32{0, 0}, 0},
		{"BothZero", []float32{0, 0, 0}, []float32{0, 0, 0}, 0},
		{"Empty", []float32{}, []float32{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	vectors := [][]float32{
		{1, 0},
		{0.3, -0.7, 2.5},
		{1e-3, 4, 4, 9, -12},
	}
	for _, v := range vectors {
		got, err := CosineSimilarity(v, v)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, 1e-12)
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := []float32{0.25, -1.5, 3, 7}
	b := []float32{2, 0.5, -0.125, 1}

	ab, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	ba, err := CosineSimilarity(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	var dm *DimensionMismatchError
	require.True(t, errors.As(err, &dm))
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 3, dm.Actual)
}

func TestCosineWithNorms_MatchesCosineSimilarity(t *testing.T) {
	a := []float32{0.1, 0.2, 0.3}
	b := []float32{-0.4, 0.9, 0.05}
	want, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	assert.Equal(t, want, CosineWithNorms(a, Norm(a), b, Norm(b)))
}

func TestL2Distance(t *testing.T) {
	d, err := L2Distance([]float32{0, 0}, []float32{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-6)

	d, err = L2Distance(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = L2Distance([]float32{1}, []float32{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
