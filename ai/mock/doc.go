// Package mock provides test double implementations of ai.Embedder.
//
// The mock returns deterministic vectors based on a text hash by default and
// supports behavior injection through function fields:
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("provider down")
//	}
package mock
