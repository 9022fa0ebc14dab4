package expand

import "context"

// SynonymProvider looks up lexical synonyms for a single word.
// Implementations must be thread-safe for concurrent use.
type SynonymProvider interface {
	// Synonyms returns synonym groups for word, most relevant group first.
	// A word with no entry returns an empty slice, not an error.
	Synonyms(ctx context.Context, word string) ([][]string, error)
}

// WordVectorProvider finds distributionally similar words.
// Implementations must be thread-safe for concurrent use.
type WordVectorProvider interface {
	// Nearest returns up to k nearest-neighbor words for word.
	Nearest(ctx context.Context, word string, k int) ([]string, error)
}
