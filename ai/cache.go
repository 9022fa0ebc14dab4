package ai

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/go-crypt/x/blake2b"
)

// CachedEmbedder memoizes embeddings by content hash. It sits in front of
// another Embedder so repeated texts (typically queries) are not re-sent to
// the provider. The cache is in-memory and unbounded; the handle is owned by
// the caller and injected, never process-wide.
type CachedEmbedder struct {
	inner Embedder

	mu    sync.RWMutex
	cache map[uint64][]float32
}

var _ Embedder = (*CachedEmbedder)(nil)

// NewCachedEmbedder creates a caching wrapper around inner.
func NewCachedEmbedder(inner Embedder) (*CachedEmbedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	return &CachedEmbedder{
		inner: inner,
		cache: make(map[uint64][]float32),
	}, nil
}

// cacheKey hashes text with BLAKE2b so identical content maps to the same
// cached vector.
func cacheKey(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// EmbedText returns the cached vector for text, embedding and caching it on
// first sight.
func (c *CachedEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)

	c.mu.RLock()
	vec, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return vec, nil
	}

	vec, err := c.inner.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = vec
	c.mu.Unlock()
	return vec, nil
}

// EmbedTexts embeds texts, serving cached entries and forwarding only misses
// to the inner embedder. Output order matches input order.
func (c *CachedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	missIdx := make([]int, 0, len(texts))
	missTexts := make([]string, 0, len(texts))

	c.mu.RLock()
	for i, text := range texts {
		if vec, ok := c.cache[cacheKey(text)]; ok {
			out[i] = vec
		} else {
			missIdx = append(missIdx, i)
			missTexts = append(missTexts, text)
		}
	}
	c.mu.RUnlock()

	if len(missTexts) == 0 {
		return out, nil
	}

	vectors, err := c.inner.EmbedTexts(ctx, missTexts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for i, vec := range vectors {
		out[missIdx[i]] = vec
		c.cache[cacheKey(missTexts[i])] = vec
	}
	c.mu.Unlock()
	return out, nil
}

// Dimension returns the inner embedder's vector dimension.
func (c *CachedEmbedder) Dimension() int {
	return c.inner.Dimension()
}

// Len returns the number of cached vectors.
func (c *CachedEmbedder) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
