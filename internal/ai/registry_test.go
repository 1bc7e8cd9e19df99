package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	var got ProviderSettings
	factory := func(_ context.Context, s ProviderSettings) (Provider, error) {
		got = s
		return new(MockProvider), nil
	}

	require.NoError(t, r.Register("gemini", factory))
	require.NoError(t, r.Register("anthropic", factory))
	assert.Error(t, r.Register("anthropic", factory))
	assert.Equal(t, []string{"anthropic", "gemini"}, r.List())
	assert.True(t, r.IsRegistered("gemini"))

	p, err := r.Create(context.Background(), "anthropic", ProviderSettings{APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())
	assert.Equal(t, "m", got.Model)
}

func TestRegistry_Errors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("anthropic", func(context.Context, ProviderSettings) (Provider, error) {
		t.Fatal("factory must not run without a key")
		return nil, nil
	}))

	_, err := r.Create(context.Background(), "openai", ProviderSettings{APIKey: "k"})
	assert.True(t, errors.Is(err, domainErrors.ErrProviderNotSupported))

	_, err = r.Create(context.Background(), "anthropic", ProviderSettings{})
	assert.True(t, errors.Is(err, domainErrors.ErrAPIKeyMissing))
}
