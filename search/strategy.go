package search

// SimilarityStrategy computes similarity scores between a query vector and a
// set of stored vectors. The default is an exhaustive exact scan; approximate
// accelerators (HNSW, IVF and friends) can be plugged in by implementing this
// interface.
type SimilarityStrategy interface {
	// Name identifies the strategy in diagnostics.
	Name() string

	// Similarities returns one score per vector, in input order. A nil or
	// zero-norm vector scores 0.
	Similarities(query []float32, vectors [][]float32) []float64
}

// ExactScan is the exhaustive cosine-similarity strategy. It is exact,
// allocation-light, and fast enough for the corpus sizes this index targets.
type ExactScan struct{}

var _ SimilarityStrategy = ExactScan{}

// Name returns "exact-scan".
func (ExactScan) Name() string { return "exact-scan" }

// Similarities computes the cosine similarity for every vector.
func (ExactScan) Similarities(query []float32, vectors [][]float32) []float64 {
	scores := make([]float64, len(vectors))
	for i, vec := range vectors {
		scores[i] = Cosine(query, vec)
	}
	return scores
}
