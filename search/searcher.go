// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/searchit/ai"
	"github.com/poiesic/searchit/core"
	"github.com/poiesic/searchit/expand"
	"github.com/poiesic/searchit/keyword"
	"github.com/poiesic/searchit/textproc"
	"github.com/xrash/smetrics"
)

// ScoredResult is a single ranked hit. Component scores are kept alongside
// the aggregate for diagnostics and monitors; results are never persisted.
type ScoredResult struct {
	Document *core.Document
	Semantic float64 // cosine similarity of query and content vectors
	Keyword  float64 // keyword score normalized by this query's maximum
	Title    float64 // averaged title vector and title string similarity
	Score    float64 // weighted aggregate used for filtering and ranking
}

// Options are the per-search tuning knobs.
type Options struct {
	// SemanticWeight splits the semantic/keyword contribution, in [0,1].
	SemanticWeight float64

	// TitleWeight scales the additive title term, in [0,1]. The weights are
	// deliberately not jointly normalized: the title term sits on top of the
	// semantic/keyword split, so aggregates can exceed 1.
	TitleWeight float64

	// Threshold is the minimum aggregate score for a result, in [0,1].
	Threshold float64

	// Limit caps the number of returned results.
	Limit int
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		SemanticWeight: 0.7,
		TitleWeight:    0.3,
		Threshold:      0.0,
		Limit:          10,
	}
}

// Searcher ranks the documents of a loaded index against queries, combining
// semantic similarity, normalized keyword scores, and title relevance.
type Searcher struct {
	index    *core.Index
	keywords *keyword.Index
	embedder ai.Embedder
	expander *expand.Expander
	strategy SimilarityStrategy
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithExpander enables query expansion through the given expander.
// Default is no expansion.
func WithExpander(expander *expand.Expander) Option {
	return func(s *Searcher) error {
		s.expander = expander
		return nil
	}
}

// WithStrategy sets the similarity strategy.
// Default is ExactScan.
func WithStrategy(strategy SimilarityStrategy) Option {
	return func(s *Searcher) error {
		if strategy == nil {
			strategy = ExactScan{}
		}
		s.strategy = strategy
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a searcher over a loaded index.
func NewSearcher(index *core.Index, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		index:    index,
		keywords: keyword.FromStats(index.Keywords),
		embedder: embedder,
		strategy: ExactScan{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Search ranks all documents against the query and returns at most
// opts.Limit results with aggregate score >= opts.Threshold, sorted by
// descending score with ties broken by ascending document ID.
func (s *Searcher) Search(ctx context.Context, query string, opts Options) ([]ScoredResult, error) {
	return s.SearchWithMonitor(ctx, query, opts, nil)
}

// SearchWithMonitor is Search with per-stage observation hooks.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, opts Options, monitor SearchMonitor) ([]ScoredResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	normalizedQuery := textproc.Normalize(query)

	queryVector, err := s.embedder.EmbedText(ctx, normalizedQuery)
	if err != nil {
		// The batching embedder absorbs provider failures; anything that
		// still surfaces here is a programming error worth reporting.
		s.logger.Error("error generating query embedding", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterQueryEmbedding(queryVector)

	terms := s.termSet(ctx, query, normalizedQuery)
	monitor.AfterExpansion(terms)

	results := s.scoreDocuments(queryVector, terms, query, opts)
	monitor.AfterScoring(len(results))

	results = rank(results, opts)
	monitor.Finish(results)
	return results, nil
}

// termSet unions the normalized original-query terms with the normalized
// expansion terms. The result is a set in first-occurrence order: a repeated
// query word contributes its tf-idf once, not once per occurrence.
func (s *Searcher) termSet(ctx context.Context, query, normalizedQuery string) []string {
	var terms []string
	seen := make(map[string]bool)
	addTerm := func(term string) {
		if !seen[term] {
			seen[term] = true
			terms = append(terms, term)
		}
	}

	for _, term := range strings.Fields(normalizedQuery) {
		addTerm(term)
	}

	if s.expander != nil {
		expanded := s.expander.Expand(ctx, query)
		for _, term := range textproc.Tokens(expanded) {
			addTerm(term)
		}
	}
	return terms
}

// scoreDocuments computes component and aggregate scores for every document.
func (s *Searcher) scoreDocuments(queryVector []float32, terms []string, query string, opts Options) []ScoredResult {
	docs := s.index.Documents

	contentVectors := make([][]float32, len(docs))
	titleVectors := make([][]float32, len(docs))
	for i, doc := range docs {
		contentVectors[i] = doc.ContentVector
		if s.index.Metadata.TitleBoost {
			titleVectors[i] = doc.TitleVector
		}
	}
	contentSims := s.strategy.Similarities(queryVector, contentVectors)
	titleSims := s.strategy.Similarities(queryVector, titleVectors)

	rawKeyword := make([]float64, len(docs))
	var keywordMax float64
	for i, doc := range docs {
		rawKeyword[i] = s.keywords.Score(terms, doc.ID)
		if rawKeyword[i] > keywordMax {
			keywordMax = rawKeyword[i]
		}
	}

	loweredQuery := strings.ToLower(query)
	results := make([]ScoredResult, 0, len(docs))
	for i, doc := range docs {
		// Normalize keyword scores against this query's maximum; all zero
		// when no document matched any term (never NaN).
		var normalizedKeyword float64
		if keywordMax > 0 {
			normalizedKeyword = rawKeyword[i] / keywordMax
		}

		var titleStringSim float64
		if doc.Title != "" {
			titleStringSim = smetrics.JaroWinkler(loweredQuery, strings.ToLower(doc.Title), 0.7, 4)
		}
		titleScore := (titleSims[i] + titleStringSim) / 2

		aggregate := contentSims[i]*opts.SemanticWeight +
			normalizedKeyword*(1-opts.SemanticWeight) +
			titleScore*opts.TitleWeight

		results = append(results, ScoredResult{
			Document: doc,
			Semantic: contentSims[i],
			Keyword:  normalizedKeyword,
			Title:    titleScore,
			Score:    aggregate,
		})
	}
	return results
}

// rank filters by threshold, sorts, and truncates.
func rank(results []ScoredResult, opts Options) []ScoredResult {
	filtered := results[:0]
	for _, result := range results {
		if result.Score >= opts.Threshold {
			filtered = append(filtered, result)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Score != filtered[j].Score {
			return filtered[i].Score > filtered[j].Score
		}
		return filtered[i].Document.ID < filtered[j].Document.ID
	})

	if opts.Limit >= 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}
	return filtered
}
