package indexer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/searchit/ai/mock"
	"github.com/poiesic/searchit/indexer"
	"github.com/poiesic/searchit/keyword"
	"github.com/poiesic/searchit/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuilder(t *testing.T) {
	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	t.Run("valid configuration", func(t *testing.T) {
		builder, err := indexer.NewBuilder(store, mock.NewMockEmbedder())
		require.NoError(t, err)
		assert.NotNil(t, builder)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := indexer.NewBuilder(nil, mock.NewMockEmbedder())
		assert.Equal(t, indexer.ErrStoreRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := indexer.NewBuilder(store, nil)
		assert.Equal(t, indexer.ErrEmbedderRequired, err)
	})
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("indexes valid records with dense ids", func(t *testing.T) {
		store, err := badger.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		builder, err := indexer.NewBuilder(store, mock.NewMockEmbedder())
		require.NoError(t, err)

		input := strings.Join([]string{
			`{"title":"Cats","content":"Cats are small mammals"}`,
			`{"title":"Dogs","content":"Dogs are loyal companions"}`,
			`{"title":"Space","content":"Space exploration uses rockets"}`,
		}, "\n")

		stats, err := builder.Build(ctx, strings.NewReader(input), "records.jsonl", "minilm")
		require.NoError(t, err)
		assert.Equal(t, 3, stats.Indexed)
		assert.Zero(t, stats.SkippedMalformed)
		assert.Zero(t, stats.SkippedMissingContent)

		index, err := store.LoadIndex(ctx)
		require.NoError(t, err)
		require.Len(t, index.Documents, 3)
		for i, doc := range index.Documents {
			assert.Equal(t, i, doc.ID)
			assert.NotEmpty(t, doc.ContentVector)
			assert.NotEmpty(t, doc.NormalizedContent)
			assert.NotEmpty(t, doc.Original)
		}
		assert.Equal(t, "records.jsonl", index.Metadata.Source)
		assert.Equal(t, "minilm", index.Metadata.Model)
		assert.Equal(t, 3, index.Metadata.DocumentCount)
		assert.Equal(t, 3, index.Keywords.TotalDocs)
	})

	t.Run("skips blank and malformed lines without consuming ids", func(t *testing.T) {
		store, err := badger.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		builder, err := indexer.NewBuilder(store, mock.NewMockEmbedder())
		require.NoError(t, err)

		input := strings.Join([]string{
			`{"title":"Cats","content":"Cats are small mammals"}`,
			``,
			`   `,
			`{not json`,
			`{"title":"Dogs","content":"Dogs are loyal companions"}`,
		}, "\n")

		stats, err := builder.Build(ctx, strings.NewReader(input), "records.jsonl", "minilm")
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Indexed)
		assert.Equal(t, 3, stats.SkippedMalformed)

		index, err := store.LoadIndex(ctx)
		require.NoError(t, err)
		require.Len(t, index.Documents, 2)
		assert.Equal(t, 0, index.Documents[0].ID)
		assert.Equal(t, 1, index.Documents[1].ID)
		assert.Equal(t, "Dogs", index.Documents[1].Title)
	})

	t.Run("skips records without content", func(t *testing.T) {
		store, err := badger.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		builder, err := indexer.NewBuilder(store, mock.NewMockEmbedder())
		require.NoError(t, err)

		input := strings.Join([]string{
			`{"title":"No body"}`,
			`{"title":"Blank body","content":"   "}`,
			`{"title":"Numeric body","content":42}`,
			`{"content":"kept"}`,
		}, "\n")

		stats, err := builder.Build(ctx, strings.NewReader(input), "records.jsonl", "minilm")
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Indexed)
		assert.Equal(t, 3, stats.SkippedMissingContent)

		index, err := store.LoadIndex(ctx)
		require.NoError(t, err)
		require.Len(t, index.Documents, 1)
		assert.Equal(t, 0, index.Documents[0].ID)
		assert.Equal(t, "kept", index.Documents[0].Content)
	})

	t.Run("custom field names", func(t *testing.T) {
		store, err := badger.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		builder, err := indexer.NewBuilder(store, mock.NewMockEmbedder(),
			indexer.WithContentField("body"),
			indexer.WithTitleField("headline"))
		require.NoError(t, err)

		input := `{"headline":"Cats","body":"Cats are small mammals"}`
		stats, err := builder.Build(ctx, strings.NewReader(input), "records.jsonl", "minilm")
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Indexed)

		index, err := store.LoadIndex(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Cats", index.Documents[0].Title)
	})

	t.Run("title boost embeds titles and inflates term counts", func(t *testing.T) {
		store, err := badger.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		builder, err := indexer.NewBuilder(store, mock.NewMockEmbedder())
		require.NoError(t, err)

		input := `{"title":"Rockets","content":"Space exploration uses rockets"}`
		_, err = builder.Build(ctx, strings.NewReader(input), "records.jsonl", "minilm")
		require.NoError(t, err)

		index, err := store.LoadIndex(ctx)
		require.NoError(t, err)
		require.Len(t, index.Documents, 1)
		assert.NotEmpty(t, index.Documents[0].TitleVector)

		// "rocket" once from content plus three title repetitions.
		kw := keyword.FromStats(index.Keywords)
		assert.Equal(t, 4, kw.TermCount("rocket", 0))
	})

	t.Run("title boost disabled leaves titles unembedded", func(t *testing.T) {
		store, err := badger.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		builder, err := indexer.NewBuilder(store, mock.NewMockEmbedder(),
			indexer.WithTitleBoost(false))
		require.NoError(t, err)

		input := `{"title":"Rockets","content":"Space exploration uses rockets"}`
		_, err = builder.Build(ctx, strings.NewReader(input), "records.jsonl", "minilm")
		require.NoError(t, err)

		index, err := store.LoadIndex(ctx)
		require.NoError(t, err)
		assert.Empty(t, index.Documents[0].TitleVector)
		assert.False(t, index.Metadata.TitleBoost)

		// No lexical repetition either: "rocket" counts only its single
		// content occurrence.
		kw := keyword.FromStats(index.Keywords)
		assert.Equal(t, 1, kw.TermCount("rocket", 0))
	})

	t.Run("empty input builds empty index", func(t *testing.T) {
		store, err := badger.NewMemoryStore()
		require.NoError(t, err)
		defer store.Close()

		builder, err := indexer.NewBuilder(store, mock.NewMockEmbedder())
		require.NoError(t, err)

		stats, err := builder.Build(ctx, strings.NewReader(""), "records.jsonl", "minilm")
		require.NoError(t, err)
		assert.Zero(t, stats.Indexed)

		index, err := store.LoadIndex(ctx)
		require.NoError(t, err)
		assert.Empty(t, index.Documents)
		assert.Zero(t, index.Keywords.TotalDocs)
	})
}
