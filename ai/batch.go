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

package ai

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
)

const (
	defaultSubBatchSize = 8
	defaultMaxInFlight  = 5
)

// BatchEmbedder wraps an Embedder with sub-batching, bounded concurrency, and
// failure isolation. Provider calls are dispatched in fixed sub-batches to
// respect external rate limits, with at most a fixed number of calls in
// flight. Each sub-batch result is written into pre-reserved output slots
// addressed by original position, so output order always matches input order
// regardless of completion order.
//
// A failing sub-batch never propagates and never cancels sibling calls: its
// slots are filled with zero vectors of the provider's declared dimension and
// the failure is logged.
type BatchEmbedder struct {
	inner        Embedder
	pool         *ants.Pool
	subBatchSize int
	logger       *slog.Logger
}

var _ Embedder = (*BatchEmbedder)(nil)

// BatchOption configures a BatchEmbedder.
type BatchOption func(*BatchEmbedder) error

// WithSubBatchSize sets the number of texts sent per provider call.
// Default is 8.
func WithSubBatchSize(size int) BatchOption {
	return func(b *BatchEmbedder) error {
		if size < 1 {
			size = 1
		}
		b.subBatchSize = size
		return nil
	}
}

// WithMaxInFlight sets the maximum number of simultaneous provider calls.
// Default is 5.
func WithMaxInFlight(n int) BatchOption {
	return func(b *BatchEmbedder) error {
		if n < 1 {
			n = 1
		}
		if b.pool != nil {
			b.pool.Release()
		}
		pool, err := ants.NewPool(n)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithBatchLogger sets a custom logger.
// Default is slog.Default().
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchEmbedder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBatchEmbedder creates a batching wrapper around inner.
func NewBatchEmbedder(inner Embedder, opts ...BatchOption) (*BatchEmbedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}

	pool, err := ants.NewPool(defaultMaxInFlight)
	if err != nil {
		return nil, err
	}

	b := &BatchEmbedder{
		inner:        inner,
		pool:         pool,
		subBatchSize: defaultSubBatchSize,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			b.Release()
			return nil, err
		}
	}

	return b, nil
}

// batchOutcome records the result of one sub-batch call, including an
// absorbed failure reason when the provider call did not succeed.
type batchOutcome struct {
	start int
	count int
	err   error
}

// EmbedTexts embeds texts through the inner embedder. The returned slice has
// the same length and order as texts. Individual provider failures are
// absorbed: the affected positions hold zero vectors and the error is logged.
// The returned error is always nil for provider-side failures.
func (b *BatchEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	if len(texts) == 0 {
		return out, nil
	}

	var wg sync.WaitGroup
	outcomes := make([]batchOutcome, 0, len(texts)/b.subBatchSize+1)
	var outcomeMu sync.Mutex

	for start := 0; start < len(texts); start += b.subBatchSize {
		end := min(start+b.subBatchSize, len(texts))
		chunkStart, chunk := start, texts[start:end]

		wg.Add(1)
		task := func() {
			defer wg.Done()
			outcome := b.embedChunk(ctx, chunkStart, chunk, out)
			outcomeMu.Lock()
			outcomes = append(outcomes, outcome)
			outcomeMu.Unlock()
		}
		if err := b.pool.Submit(task); err != nil {
			// Pool rejected the task (e.g. released); run inline so the
			// slots are still filled.
			task()
		}
	}
	wg.Wait()

	for _, outcome := range outcomes {
		if outcome.err != nil {
			b.logger.Warn("embedding sub-batch failed, substituted zero vectors",
				"start", outcome.start, "count", outcome.count, "err", outcome.err)
		}
	}

	return out, nil
}

// embedChunk embeds one sub-batch and writes results into the reserved slots.
func (b *BatchEmbedder) embedChunk(ctx context.Context, start int, chunk []string, out [][]float32) batchOutcome {
	vectors, err := b.inner.EmbedTexts(ctx, chunk)
	if err == nil && len(vectors) != len(chunk) {
		err = ErrEmbeddingCountMismatch
	}
	if err != nil {
		for i := range chunk {
			out[start+i] = make([]float32, b.inner.Dimension())
		}
		return batchOutcome{start: start, count: len(chunk), err: err}
	}

	for i, vec := range vectors {
		out[start+i] = vec
	}
	return batchOutcome{start: start, count: len(chunk)}
}

// EmbedText embeds a single text. A provider failure is absorbed into a zero
// vector, matching the EmbedTexts contract.
func (b *BatchEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := b.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// Dimension returns the inner embedder's vector dimension.
func (b *BatchEmbedder) Dimension() int {
	return b.inner.Dimension()
}

// Release releases the worker pool. The embedder should not be used after
// calling Release.
func (b *BatchEmbedder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
