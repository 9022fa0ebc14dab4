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

package indexer

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/searchit/ai"
	"github.com/poiesic/searchit/core"
	"github.com/poiesic/searchit/keyword"
	"github.com/poiesic/searchit/storage"
	"github.com/poiesic/searchit/textproc"
)

const (
	// DefaultBatchSize is the number of documents embedded per logical batch.
	DefaultBatchSize = 32

	// DefaultTitleRepeat is how often the normalized title is repeated when
	// building keyword statistics. Repetition inflates title term frequency
	// without touching the stored title text.
	DefaultTitleRepeat = 3

	defaultContentField = "content"
	defaultTitleField   = "title"

	// Scanner buffer for long input lines.
	maxLineBytes = 4 * 1024 * 1024
)

// Builder reads one-JSON-object-per-line records, enriches them with
// embeddings and keyword statistics, and persists the result as an index.
type Builder struct {
	store        storage.Store
	embedder     ai.Embedder
	contentField string
	titleField   string
	titleBoost   bool
	batchSize    int
	titleRepeat  int
	logger       *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithContentField sets the source field holding document content.
// Default is "content".
func WithContentField(field string) Option {
	return func(b *Builder) error {
		if field != "" {
			b.contentField = field
		}
		return nil
	}
}

// WithTitleField sets the source field holding document titles.
// Default is "title".
func WithTitleField(field string) Option {
	return func(b *Builder) error {
		if field != "" {
			b.titleField = field
		}
		return nil
	}
}

// WithTitleBoost enables or disables title boosting.
// Default is enabled.
func WithTitleBoost(enabled bool) Option {
	return func(b *Builder) error {
		b.titleBoost = enabled
		return nil
	}
}

// WithBatchSize sets the logical embedding batch size.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		b.batchSize = size
		return nil
	}
}

// WithTitleRepeat sets the title repetition factor for keyword statistics.
// Default is 3.
func WithTitleRepeat(n int) Option {
	return func(b *Builder) error {
		if n < 0 {
			n = 0
		}
		b.titleRepeat = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates an index builder writing to store and embedding through
// embedder.
func NewBuilder(store storage.Store, embedder ai.Embedder, opts ...Option) (*Builder, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	b := &Builder{
		store:        store,
		embedder:     embedder,
		contentField: defaultContentField,
		titleField:   defaultTitleField,
		titleBoost:   true,
		batchSize:    DefaultBatchSize,
		titleRepeat:  DefaultTitleRepeat,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Stats reports the outcome of one build.
type Stats struct {
	Indexed               int
	SkippedMalformed      int
	SkippedMissingContent int
}

// Build reads records from r, builds the index, and persists it. Lines that
// are empty, undecodable, or missing usable content are logged and skipped
// without consuming a document ID; they never abort the build. Model name is
// recorded in metadata for query-time parity checks.
func (b *Builder) Build(ctx context.Context, r io.Reader, source, model string) (*Stats, error) {
	stats := &Stats{}
	documents, err := b.collectDocuments(ctx, r, stats)
	if err != nil {
		return nil, err
	}

	if err := b.embedDocuments(ctx, documents); err != nil {
		return nil, err
	}

	kw := keyword.New()
	for _, doc := range documents {
		kw.Add(doc.ID, b.keywordTokens(doc))
	}

	index := &core.Index{
		Metadata: core.IndexMetadata{
			CreatedAt:     time.Now().UTC(),
			Source:        source,
			ContentField:  b.contentField,
			TitleField:    b.titleField,
			Model:         model,
			TitleBoost:    b.titleBoost,
			DocumentCount: len(documents),
			Dimension:     b.embedder.Dimension(),
		},
		Documents: documents,
		Keywords:  kw.Stats(),
	}

	if err := b.store.SaveIndex(ctx, index); err != nil {
		return nil, err
	}

	b.logger.Info("index build complete",
		"source", source,
		"indexed", stats.Indexed,
		"skippedMalformed", stats.SkippedMalformed,
		"skippedMissingContent", stats.SkippedMissingContent)
	return stats, nil
}

// collectDocuments decodes and validates the record stream, assigning dense
// IDs to surviving records only.
func (b *Builder) collectDocuments(ctx context.Context, r io.Reader, stats *Stats) ([]*core.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var documents []*core.Document
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			stats.SkippedMalformed++
			b.logger.Warn("skipping empty line", "line", lineNo)
			continue
		}

		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			stats.SkippedMalformed++
			b.logger.Warn("skipping malformed line", "line", lineNo, "err", err)
			continue
		}

		content, _ := record[b.contentField].(string)
		if strings.TrimSpace(content) == "" {
			stats.SkippedMissingContent++
			b.logger.Warn("skipping record without content", "line", lineNo, "field", b.contentField)
			continue
		}
		title, _ := record[b.titleField].(string)

		doc := &core.Document{
			ID:                len(documents),
			Title:             title,
			Content:           content,
			NormalizedTitle:   textproc.Normalize(title),
			NormalizedContent: textproc.Normalize(content),
			Original:          json.RawMessage(line),
		}
		documents = append(documents, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	stats.Indexed = len(documents)
	return documents, nil
}

// embedDocuments generates content embeddings for every document and, when
// title boost is enabled, title embeddings for documents with a non-empty
// normalized title. Work proceeds in fixed-size logical batches to bound
// memory; per-call failure isolation is the embedder's contract.
func (b *Builder) embedDocuments(ctx context.Context, documents []*core.Document) error {
	for start := 0; start < len(documents); start += b.batchSize {
		end := min(start+b.batchSize, len(documents))
		batch := documents[start:end]

		texts := make([]string, len(batch))
		for i, doc := range batch {
			texts[i] = doc.NormalizedContent
		}
		vectors, err := b.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return err
		}
		for i, doc := range batch {
			doc.ContentVector = vectors[i]
		}

		if !b.titleBoost {
			continue
		}

		var (
			titled     []*core.Document
			titleTexts []string
		)
		for _, doc := range batch {
			if doc.NormalizedTitle != "" {
				titled = append(titled, doc)
				titleTexts = append(titleTexts, doc.NormalizedTitle)
			}
		}
		if len(titled) == 0 {
			continue
		}
		titleVectors, err := b.embedder.EmbedTexts(ctx, titleTexts)
		if err != nil {
			return err
		}
		for i, doc := range titled {
			doc.TitleVector = titleVectors[i]
		}
	}
	return nil
}

// keywordTokens returns the token stream counted for one document: the
// normalized content followed, when title boost is enabled, by the normalized
// title repeated titleRepeat times.
func (b *Builder) keywordTokens(doc *core.Document) []string {
	tokens := strings.Fields(doc.NormalizedContent)
	if !b.titleBoost || doc.NormalizedTitle == "" || b.titleRepeat == 0 {
		return tokens
	}
	titleTokens := strings.Fields(doc.NormalizedTitle)
	for i := 0; i < b.titleRepeat; i++ {
		tokens = append(tokens, titleTokens...)
	}
	return tokens
}
