package ai

import (
	"testing"

	"github.com/poiesic/searchit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveModel(t *testing.T) {
	t.Run("known model", func(t *testing.T) {
		spec, err := ResolveModel("minilm")
		require.NoError(t, err)
		assert.Equal(t, 384, spec.Dimension)
		assert.NotEmpty(t, spec.ProviderID)
	})

	t.Run("unknown model is fatal", func(t *testing.T) {
		_, err := ResolveModel("no-such-model")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrModelInit)
		assert.Contains(t, err.Error(), "no-such-model")
	})

	t.Run("registered model resolves", func(t *testing.T) {
		RegisterModel("custom-embed", ModelSpec{ProviderID: "custom/embed-v1", Dimension: 512})
		spec, err := ResolveModel("custom-embed")
		require.NoError(t, err)
		assert.Equal(t, "custom/embed-v1", spec.ProviderID)
		assert.Equal(t, 512, spec.Dimension)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("normalizes host suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/"))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := NewConfig(WithModel(""))
		assert.Error(t, cfg.Validate())
	})
}
