package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/poiesic/searchit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentSerialization(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		doc := &core.Document{
			ID:                7,
			Title:             "Cats",
			Content:           "Cats are small mammals",
			NormalizedTitle:   "cat",
			NormalizedContent: "cat small mammal",
			ContentVector:     []float32{0.1, -0.2, 0.3},
			TitleVector:       []float32{0.4, 0.5, 0.6},
			Original:          json.RawMessage(`{"title":"Cats","content":"Cats are small mammals"}`),
		}

		restored, err := UnmarshalDocument(MarshalDocument(doc))
		require.NoError(t, err)
		assert.Equal(t, doc, restored)
	})

	t.Run("document without title vector", func(t *testing.T) {
		doc := &core.Document{
			ID:                0,
			Content:           "untitled body",
			NormalizedContent: "untitl bodi",
			ContentVector:     []float32{1, 0},
		}

		restored, err := UnmarshalDocument(MarshalDocument(doc))
		require.NoError(t, err)
		assert.Equal(t, doc.ID, restored.ID)
		assert.Equal(t, doc.ContentVector, restored.ContentVector)
		assert.Empty(t, restored.TitleVector)
		assert.Empty(t, restored.Original)
	})

	t.Run("truncated data", func(t *testing.T) {
		doc := &core.Document{ID: 1, Content: "body", ContentVector: []float32{1, 2, 3}}
		data := MarshalDocument(doc)
		_, err := UnmarshalDocument(data[:len(data)/2])
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}

func TestMetadataSerialization(t *testing.T) {
	meta := &core.IndexMetadata{
		CreatedAt:     time.Date(2025, 11, 3, 12, 30, 0, 0, time.UTC),
		Source:        "records.jsonl",
		ContentField:  "content",
		TitleField:    "title",
		Model:         "minilm",
		TitleBoost:    true,
		DocumentCount: 42,
		Dimension:     384,
	}

	restored, err := UnmarshalMetadata(MarshalMetadata(meta))
	require.NoError(t, err)
	assert.Equal(t, meta, restored)
}

func TestKeywordStatsSerialization(t *testing.T) {
	stats := &core.KeywordStats{
		DocTerms: []map[string]int{
			{"cat": 2, "mammal": 1},
			{"dog": 1},
		},
		DocFreq:   map[string]int{"cat": 1, "mammal": 1, "dog": 1},
		TotalDocs: 2,
	}

	restored, err := UnmarshalKeywordStats(MarshalKeywordStats(stats))
	require.NoError(t, err)
	assert.Equal(t, stats, restored)
}
