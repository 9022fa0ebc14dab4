package ai_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/searchit/ai"
	"github.com/poiesic/searchit/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("nil inner embedder", func(t *testing.T) {
		_, err := ai.NewBatchEmbedder(nil)
		assert.Equal(t, ai.ErrEmbedderRequired, err)
	})

	t.Run("output order matches input order", func(t *testing.T) {
		inner := mock.NewMockEmbedder()
		inner.Dim = 4
		inner.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			// Stagger completion so later chunks can finish first.
			time.Sleep(time.Duration(len(texts[0])) * time.Millisecond)
			out := make([][]float32, len(texts))
			for i, text := range texts {
				out[i] = []float32{float32(len(text)), 0, 0, 0}
			}
			return out, nil
		}

		batcher, err := ai.NewBatchEmbedder(inner, ai.WithSubBatchSize(2), ai.WithMaxInFlight(3))
		require.NoError(t, err)
		defer batcher.Release()

		texts := make([]string, 20)
		for i := range texts {
			texts[i] = fmt.Sprintf("%0*d", i+1, 0) // text of length i+1
		}

		vectors, err := batcher.EmbedTexts(ctx, texts)
		require.NoError(t, err)
		require.Len(t, vectors, len(texts))
		for i, vec := range vectors {
			assert.Equal(t, float32(len(texts[i])), vec[0], "slot %d", i)
		}
	})

	t.Run("failing sub-batch substitutes zero vectors", func(t *testing.T) {
		var calls atomic.Int32
		inner := mock.NewMockEmbedder()
		inner.Dim = 3
		inner.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("provider down")
			}
			out := make([][]float32, len(texts))
			for i := range texts {
				out[i] = []float32{1, 1, 1}
			}
			return out, nil
		}

		batcher, err := ai.NewBatchEmbedder(inner, ai.WithSubBatchSize(2), ai.WithMaxInFlight(1))
		require.NoError(t, err)
		defer batcher.Release()

		vectors, err := batcher.EmbedTexts(ctx, []string{"a", "b", "c", "d"})
		require.NoError(t, err)
		require.Len(t, vectors, 4)

		var zeroed, filled int
		for _, vec := range vectors {
			require.Len(t, vec, 3)
			if vec[0] == 0 {
				zeroed++
			} else {
				filled++
			}
		}
		assert.Equal(t, 2, zeroed, "one sub-batch of two texts should be zero-filled")
		assert.Equal(t, 2, filled, "the sibling sub-batch must not be cancelled")
	})

	t.Run("all calls failing yields all zero vectors without error", func(t *testing.T) {
		inner := mock.NewMockEmbedder()
		inner.Dim = 5
		inner.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("provider down")
		}

		batcher, err := ai.NewBatchEmbedder(inner)
		require.NoError(t, err)
		defer batcher.Release()

		vectors, err := batcher.EmbedTexts(ctx, []string{"x", "y"})
		require.NoError(t, err)
		for _, vec := range vectors {
			assert.Equal(t, make([]float32, 5), vec)
		}

		vec, err := batcher.EmbedText(ctx, "z")
		require.NoError(t, err)
		assert.Equal(t, make([]float32, 5), vec)
	})

	t.Run("empty input", func(t *testing.T) {
		batcher, err := ai.NewBatchEmbedder(mock.NewMockEmbedder())
		require.NoError(t, err)
		defer batcher.Release()

		vectors, err := batcher.EmbedTexts(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, vectors)
	})

	t.Run("dimension passthrough", func(t *testing.T) {
		inner := mock.NewMockEmbedder()
		inner.Dim = 7
		batcher, err := ai.NewBatchEmbedder(inner)
		require.NoError(t, err)
		defer batcher.Release()
		assert.Equal(t, 7, batcher.Dimension())
	})
}

func TestCachedEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("nil inner embedder", func(t *testing.T) {
		_, err := ai.NewCachedEmbedder(nil)
		assert.Equal(t, ai.ErrEmbedderRequired, err)
	})

	t.Run("repeated text served from cache", func(t *testing.T) {
		inner := mock.NewMockEmbedder()
		cached, err := ai.NewCachedEmbedder(inner)
		require.NoError(t, err)

		first, err := cached.EmbedText(ctx, "hello")
		require.NoError(t, err)
		second, err := cached.EmbedText(ctx, "hello")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, inner.CallCount())
		assert.Equal(t, 1, cached.Len())
	})

	t.Run("batch mixes hits and misses in order", func(t *testing.T) {
		inner := mock.NewMockEmbedder()
		cached, err := ai.NewCachedEmbedder(inner)
		require.NoError(t, err)

		warm, err := cached.EmbedText(ctx, "b")
		require.NoError(t, err)

		vectors, err := cached.EmbedTexts(ctx, []string{"a", "b", "c"})
		require.NoError(t, err)
		require.Len(t, vectors, 3)
		assert.Equal(t, warm, vectors[1])
		assert.Equal(t, 3, cached.Len())
	})
}
