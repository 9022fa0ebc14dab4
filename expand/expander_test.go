package expand_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/searchit/expand"
	"github.com/poiesic/searchit/expand/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	ctx := context.Background()

	t.Run("no collaborators returns query unchanged", func(t *testing.T) {
		expander, err := expand.NewExpander(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "feline pet", expander.Expand(ctx, "feline pet"))
	})

	t.Run("appends unique terms from both sources", func(t *testing.T) {
		syn := &mock.MockSynonymProvider{Entries: map[string][][]string{
			"feline": {{"cat", "kitty"}},
		}}
		vec := &mock.MockWordVectorProvider{Neighbors: map[string][]string{
			"feline": {"cat", "lion"},
			"pet":    {"animal"},
		}}

		expander, err := expand.NewExpander(syn, vec)
		require.NoError(t, err)

		out := expander.Expand(ctx, "feline pet")
		assert.Equal(t, "feline pet cat kitty lion animal", out)
	})

	t.Run("original tokens excluded from expansion", func(t *testing.T) {
		syn := &mock.MockSynonymProvider{Entries: map[string][][]string{
			"cat": {{"cat", "feline"}},
		}}
		expander, err := expand.NewExpander(syn, nil)
		require.NoError(t, err)

		out := expander.Expand(ctx, "cat")
		assert.Equal(t, "cat feline", out)
	})

	t.Run("short tokens skipped", func(t *testing.T) {
		var lookedUp []string
		syn := &mock.MockSynonymProvider{
			SynonymsFunc: func(ctx context.Context, w string) ([][]string, error) {
				lookedUp = append(lookedUp, w)
				return nil, nil
			},
		}
		expander, err := expand.NewExpander(syn, nil)
		require.NoError(t, err)

		expander.Expand(ctx, "go is fun today")
		assert.Equal(t, []string{"fun", "today"}, lookedUp)
	})

	t.Run("limits synonym groups", func(t *testing.T) {
		syn := &mock.MockSynonymProvider{Entries: map[string][][]string{
			"large": {{"big"}, {"huge"}, {"vast"}, {"giant"}},
		}}
		expander, err := expand.NewExpander(syn, nil)
		require.NoError(t, err)

		out := expander.Expand(ctx, "large")
		assert.Equal(t, "large big huge vast", out)
	})

	t.Run("limits word-vector neighbors", func(t *testing.T) {
		vec := &mock.MockWordVectorProvider{Neighbors: map[string][]string{
			"large": {"big", "huge", "vast", "giant"},
		}}
		expander, err := expand.NewExpander(nil, vec, expand.WithNeighbors(2))
		require.NoError(t, err)

		out := expander.Expand(ctx, "large")
		assert.Equal(t, "large big huge", out)
	})

	t.Run("collaborator failures are swallowed", func(t *testing.T) {
		syn := &mock.MockSynonymProvider{
			SynonymsFunc: func(ctx context.Context, w string) ([][]string, error) {
				return nil, errors.New("dictionary unavailable")
			},
		}
		vec := &mock.MockWordVectorProvider{Neighbors: map[string][]string{
			"rocket": {"spacecraft"},
		}}
		expander, err := expand.NewExpander(syn, vec)
		require.NoError(t, err)

		out := expander.Expand(ctx, "rocket")
		assert.Equal(t, "rocket spacecraft", out)
	})

	t.Run("lowercases discovered terms and deduplicates", func(t *testing.T) {
		syn := &mock.MockSynonymProvider{Entries: map[string][][]string{
			"happy": {{"Glad", "glad", "JOYFUL"}},
		}}
		expander, err := expand.NewExpander(syn, nil)
		require.NoError(t, err)

		out := expander.Expand(ctx, "happy")
		fields := strings.Fields(out)
		assert.Equal(t, []string{"happy", "glad", "joyful"}, fields)
	})
}
