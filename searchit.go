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

package searchit

import (
	"context"
	"log/slog"

	"github.com/poiesic/searchit/ai"
	"github.com/poiesic/searchit/ai/openai"
	"github.com/poiesic/searchit/expand"
	"github.com/poiesic/searchit/indexer"
	"github.com/poiesic/searchit/search"
	"github.com/poiesic/searchit/storage"
	"github.com/poiesic/searchit/storage/badger"
)

// Engine bundles an index store with the embedding stack and an optional
// query expander. It is the high-level entry point used by the CLI.
type Engine struct {
	store    storage.Store
	embedder *ai.BatchEmbedder
	expander *expand.Expander
	model    string
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	expander *expand.Expander
	cached   bool
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithQueryExpander enables query expansion for searches.
func WithQueryExpander(expander *expand.Expander) EngineOption {
	return func(o *engineOptions) {
		o.expander = expander
	}
}

// WithEmbeddingCache memoizes embeddings across calls. Useful when the same
// texts are embedded repeatedly, as in rebuild loops.
func WithEmbeddingCache() EngineOption {
	return func(o *engineOptions) {
		o.cached = true
	}
}

// Open opens or creates the index at indexDir and wires the embedding stack.
// An empty indexDir opens an in-memory store, which is only useful for tests.
func Open(indexDir string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := badger.OpenStore(indexDir)
	if err != nil {
		return nil, err
	}

	var inner ai.Embedder
	inner, err = openai.NewEmbedder(options.aiConfig)
	if err != nil {
		store.Close()
		return nil, err
	}
	if options.cached {
		inner, err = ai.NewCachedEmbedder(inner)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	embedder, err := ai.NewBatchEmbedder(inner)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Engine{
		store:    store,
		embedder: embedder,
		expander: options.expander,
		model:    options.aiConfig.Model,
		logger:   slog.Default(),
	}, nil
}

// NewBuilder returns an index builder writing to this engine's store.
func (e *Engine) NewBuilder(opts ...indexer.Option) (*indexer.Builder, error) {
	return indexer.NewBuilder(e.store, e.embedder, opts...)
}

// NewSearcher loads the persisted index and returns a searcher over it. The
// engine's expander, when configured, is wired in automatically.
func (e *Engine) NewSearcher(ctx context.Context, opts ...search.Option) (*search.Searcher, error) {
	index, err := e.store.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}

	if index.Metadata.Model != "" && index.Metadata.Model != e.model {
		e.logger.Warn("index was built with a different embedding model",
			"indexModel", index.Metadata.Model, "configuredModel", e.model)
	}

	if e.expander != nil {
		opts = append([]search.Option{search.WithExpander(e.expander)}, opts...)
	}
	return search.NewSearcher(index, e.embedder, opts...)
}

// Model returns the configured logical embedding model name.
func (e *Engine) Model() string {
	return e.model
}

// Store exposes the underlying index store.
func (e *Engine) Store() storage.Store {
	return e.store
}

// Close releases the embedding worker pool and closes the store.
func (e *Engine) Close() error {
	e.embedder.Release()

	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing index store", "err", err)
		return err
	}
	return nil
}
