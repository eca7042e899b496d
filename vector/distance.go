package vector

import (
	"math"

	"github.com/viant/vec/search"
)

// CosineSimilarity computes the cosine similarity between two vectors as
// Dot(a, b) / (Norm(a) * Norm(b)). It returns a *DimensionMismatchError if
// the vectors have different lengths. When either vector has zero magnitude
// (including empty vectors) the similarity is 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{Expected: len(a), Actual: len(b)}
	}
	return cosine(a, Norm(a), b, Norm(b)), nil
}

// CosineWithNorms scores a against b using precomputed magnitudes. The result
// is bit-identical to CosineSimilarity for the same inputs; lengths must
// already be known to match.
func CosineWithNorms(a []float32, na float64, b []float32, nb float64) float64 {
	return cosine(a, na, b, nb)
}

func cosine(a []float32, na float64, b []float32, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

// Dot returns the dot product of a and b accumulated in float64. The caller
// guarantees equal lengths.
func Dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

// Norm returns the Euclidean magnitude of v.
func Norm(v []float32) float64 { return math.Sqrt(Dot(v, v)) }

// L2Distance computes the Euclidean (L2) distance between two vectors. It
// returns a *DimensionMismatchError if the vectors have different lengths.
func L2Distance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{Expected: len(a), Actual: len(b)}
	}
	if len(a) == 0 {
		return 0, nil
	}
	return float64(search.Float32s(a).EuclideanDistance(b)), nil
}
