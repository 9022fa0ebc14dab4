package mock

import "context"

// MockSynonymProvider is a test double for expand.SynonymProvider.
type MockSynonymProvider struct {
	// SynonymsFunc is called by Synonyms if set.
	SynonymsFunc func(ctx context.Context, word string) ([][]string, error)

	// Entries backs the default behavior when SynonymsFunc is nil.
	Entries map[string][][]string
}

// Synonyms returns the configured synonym groups for word.
func (m *MockSynonymProvider) Synonyms(ctx context.Context, word string) ([][]string, error) {
	if m.SynonymsFunc != nil {
		return m.SynonymsFunc(ctx, word)
	}
	return m.Entries[word], nil
}

// MockWordVectorProvider is a test double for expand.WordVectorProvider.
type MockWordVectorProvider struct {
	// NearestFunc is called by Nearest if set.
	NearestFunc func(ctx context.Context, word string, k int) ([]string, error)

	// Neighbors backs the default behavior when NearestFunc is nil.
	Neighbors map[string][]string
}

// Nearest returns up to k configured neighbors for word.
func (m *MockWordVectorProvider) Nearest(ctx context.Context, word string, k int) ([]string, error) {
	if m.NearestFunc != nil {
		return m.NearestFunc(ctx, word, k)
	}
	neighbors := m.Neighbors[word]
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}
