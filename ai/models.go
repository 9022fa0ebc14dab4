package ai

import (
	"fmt"
	"sync"

	"github.com/poiesic/searchit/core"
)

// ModelSpec maps a logical model name onto a provider-specific identifier
// and the vector dimension that provider declares for it.
type ModelSpec struct {
	ProviderID string
	Dimension  int
}

// DefaultModel is the logical model used when none is configured.
const DefaultModel = "minilm"

var (
	modelMu    sync.RWMutex
	modelTable = map[string]ModelSpec{
		"minilm":                 {ProviderID: "all-minilm", Dimension: 384},
		"embeddinggemma":         {ProviderID: "embeddinggemma", Dimension: 768},
		"nomic-embed-text":       {ProviderID: "nomic-embed-text", Dimension: 768},
		"text-embedding-3-small": {ProviderID: "text-embedding-3-small", Dimension: 1536},
		"text-embedding-3-large": {ProviderID: "text-embedding-3-large", Dimension: 3072},
	}
)

// ResolveModel looks up the provider identifier for a logical model name.
// An unknown name is a fatal condition wrapping core.ErrModelInit.
func ResolveModel(name string) (ModelSpec, error) {
	modelMu.RLock()
	defer modelMu.RUnlock()

	spec, ok := modelTable[name]
	if !ok {
		return ModelSpec{}, fmt.Errorf("%w: unknown model %q", core.ErrModelInit, name)
	}
	return spec, nil
}

// RegisterModel adds or replaces a logical model mapping. It allows callers
// to extend the table without touching nested provider conditionals.
func RegisterModel(name string, spec ModelSpec) {
	modelMu.Lock()
	defer modelMu.Unlock()
	modelTable[name] = spec
}
