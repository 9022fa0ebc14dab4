package keyword

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestIndex() *Index {
	idx := New()
	idx.Add(0, []string{"cat", "small", "mammal", "cat"})
	idx.Add(1, []string{"dog", "loyal", "companion"})
	idx.Add(2, []string{"space", "exploration", "rocket", "small"})
	return idx
}

func TestTFIDF(t *testing.T) {
	idx := buildTestIndex()

	t.Run("never negative", func(t *testing.T) {
		for _, term := range []string{"cat", "dog", "small", "rocket", "unseen"} {
			for docID := 0; docID < 3; docID++ {
				assert.GreaterOrEqual(t, idx.TFIDF(term, docID), 0.0, "term %q doc %d", term, docID)
			}
		}
	})

	t.Run("zero for absent term", func(t *testing.T) {
		assert.Zero(t, idx.TFIDF("dog", 0))
		assert.Zero(t, idx.TFIDF("unseen", 1))
	})

	t.Run("zero for out-of-range document", func(t *testing.T) {
		assert.Zero(t, idx.TFIDF("cat", -1))
		assert.Zero(t, idx.TFIDF("cat", 99))
	})

	t.Run("rewards frequency and rarity", func(t *testing.T) {
		// "cat" occurs twice in doc 0 and in no other document.
		expected := 2.0 * math.Log(3.0/1.0)
		assert.InDelta(t, expected, idx.TFIDF("cat", 0), 1e-9)

		// "small" appears in two of three documents, so it weighs less.
		assert.Less(t, idx.TFIDF("small", 0), idx.TFIDF("cat", 0))
	})
}

func TestScore(t *testing.T) {
	idx := buildTestIndex()

	t.Run("sum of individual tfidf values", func(t *testing.T) {
		terms := []string{"cat", "small"}
		expected := idx.TFIDF("cat", 0) + idx.TFIDF("small", 0)
		assert.InDelta(t, expected, idx.Score(terms, 0), 1e-9)
	})

	t.Run("duplicate query terms accumulate", func(t *testing.T) {
		single := idx.Score([]string{"cat"}, 0)
		double := idx.Score([]string{"cat", "cat"}, 0)
		assert.InDelta(t, 2*single, double, 1e-9)
	})

	t.Run("zero for unrelated document", func(t *testing.T) {
		assert.Zero(t, idx.Score([]string{"cat", "mammal"}, 2))
	})
}

func TestScoreNormalized(t *testing.T) {
	idx := buildTestIndex()

	t.Run("divides by document length", func(t *testing.T) {
		raw := idx.Score([]string{"cat"}, 0)
		assert.InDelta(t, raw/4.0, idx.ScoreNormalized([]string{"cat"}, 0), 1e-9)
	})

	t.Run("zero for out-of-range document", func(t *testing.T) {
		assert.Zero(t, idx.ScoreNormalized([]string{"cat"}, 42))
	})
}

func TestStatsRoundTrip(t *testing.T) {
	idx := buildTestIndex()
	restored := FromStats(idx.Stats())

	require.Equal(t, idx.TotalDocs(), restored.TotalDocs())
	for _, term := range []string{"cat", "dog", "small", "rocket"} {
		for docID := 0; docID < 3; docID++ {
			assert.Equal(t, idx.TFIDF(term, docID), restored.TFIDF(term, docID))
		}
	}
}

func TestEmptyIndex(t *testing.T) {
	idx := New()
	assert.Zero(t, idx.TFIDF("anything", 0))
	assert.Zero(t, idx.Score([]string{"anything"}, 0))
	assert.Zero(t, idx.TotalDocs())
}
