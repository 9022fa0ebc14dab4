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

package expand

import (
	"context"
	"log/slog"
	"strings"
)

const (
	defaultNeighbors   = 3
	defaultMaxGroups   = 3
	defaultMinTokenLen = 3
)

// Expander derives additional query terms from synonym and word-vector
// collaborators. Both collaborators are strictly best-effort: a failure,
// timeout, or missing entry contributes zero terms and is never propagated.
type Expander struct {
	synonyms    SynonymProvider
	wordVectors WordVectorProvider
	neighbors   int
	maxGroups   int
	minTokenLen int
	logger      *slog.Logger
}

// Option configures an Expander.
type Option func(*Expander) error

// WithNeighbors sets how many word-vector neighbors are requested per token.
// Default is 3.
func WithNeighbors(k int) Option {
	return func(e *Expander) error {
		if k < 1 {
			k = 1
		}
		e.neighbors = k
		return nil
	}
}

// WithMaxGroups sets how many synonym groups are taken per token.
// Default is 3.
func WithMaxGroups(n int) Option {
	return func(e *Expander) error {
		if n < 1 {
			n = 1
		}
		e.maxGroups = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expander) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExpander creates an expander over the given collaborators. Either
// collaborator may be nil, in which case that source contributes no terms.
func NewExpander(synonyms SynonymProvider, wordVectors WordVectorProvider, opts ...Option) (*Expander, error) {
	e := &Expander{
		synonyms:    synonyms,
		wordVectors: wordVectors,
		neighbors:   defaultNeighbors,
		maxGroups:   defaultMaxGroups,
		minTokenLen: defaultMinTokenLen,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// lookupResult distinguishes a successful lookup from an absorbed failure.
// The caller always receives a usable term list; err is diagnostic only.
type lookupResult struct {
	terms []string
	err   error
}

// Expand returns the raw query text followed by the space-joined set of
// unique discovered terms. Tokenization is a plain lowercase whitespace
// split; stop-word removal and stemming are deliberately not applied here so
// collaborators see surface forms.
func (e *Expander) Expand(ctx context.Context, query string) string {
	tokens := strings.Fields(strings.ToLower(query))

	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		seen[tok] = true
	}

	var expanded []string
	addTerm := func(term string) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		expanded = append(expanded, term)
	}

	for _, tok := range tokens {
		if len(tok) < e.minTokenLen {
			continue
		}

		synResult := e.lookupSynonyms(ctx, tok)
		if synResult.err != nil {
			e.logger.Debug("synonym lookup failed", "token", tok, "err", synResult.err)
		}
		for _, term := range synResult.terms {
			addTerm(term)
		}

		vecResult := e.lookupNeighbors(ctx, tok)
		if vecResult.err != nil {
			e.logger.Debug("word-vector lookup failed", "token", tok, "err", vecResult.err)
		}
		for _, term := range vecResult.terms {
			addTerm(term)
		}
	}

	if len(expanded) == 0 {
		return query
	}
	return query + " " + strings.Join(expanded, " ")
}

// lookupSynonyms flattens up to maxGroups synonym groups for token,
// excluding the token itself. Failures are absorbed into the result.
func (e *Expander) lookupSynonyms(ctx context.Context, token string) lookupResult {
	if e.synonyms == nil {
		return lookupResult{}
	}

	groups, err := e.synonyms.Synonyms(ctx, token)
	if err != nil {
		return lookupResult{err: err}
	}
	if len(groups) > e.maxGroups {
		groups = groups[:e.maxGroups]
	}

	var terms []string
	for _, group := range groups {
		for _, word := range group {
			if strings.EqualFold(word, token) {
				continue
			}
			terms = append(terms, word)
		}
	}
	return lookupResult{terms: terms}
}

// lookupNeighbors returns the top-k nearest neighbors for token.
// Failures are absorbed into the result.
func (e *Expander) lookupNeighbors(ctx context.Context, token string) lookupResult {
	if e.wordVectors == nil {
		return lookupResult{}
	}

	neighbors, err := e.wordVectors.Nearest(ctx, token, e.neighbors)
	if err != nil {
		return lookupResult{err: err}
	}
	if len(neighbors) > e.neighbors {
		neighbors = neighbors[:e.neighbors]
	}
	return lookupResult{terms: neighbors}
}
