package index

// Hit is a single ranked result: the position of the vector in the sequence
// passed to Build and its similarity to the query.
type Hit struct {
	Position int
	Score    float64
}

// Accept filters candidate positions during a query. A nil Accept admits
// every position.
type Accept func(pos int) bool

// Index ranks a fixed sequence of vectors against query vectors.
type Index interface {
	// Build loads the vectors to rank. Positions in query results refer to
	// this slice. Vectors are not required to share one dimension. A
	// failed Build leaves the previously built contents in place.
	Build(vectors [][]float32) error

	// Query scores every accepted vector against query and returns up to k
	// hits ordered by decreasing score, where higher score means more
	// similar. Hits with equal scores keep their Build order. k <= 0 yields
	// no hits.
	Query(query []float32, k int, accept Accept) ([]Hit, error)

	// Len returns the number of vectors loaded by Build.
	Len() int
}
