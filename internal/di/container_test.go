package di

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DorianABDS/spec-to-issues/internal/ai"
	"github.com/DorianABDS/spec-to-issues/internal/config"
	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/publisher"
)

type stubProvider struct{ settings ai.ProviderSettings }

func (s *stubProvider) Complete(context.Context, ai.CompletionRequest) (*ai.Completion, error) {
	return &ai.Completion{Text: `{"issues":[]}`}, nil
}

func (s *stubProvider) Name() string { return "anthropic" }

func testConfig() *config.Config {
	return &config.Config{
		AI: config.AIConfig{
			Provider:         config.AIAnthropic,
			Model:            "claude-opus-4-5",
			MaxTokens:        1024,
			MaxDocumentChars: 100,
		},
		Anthropic: config.ProviderConfig{APIKey: "sk-test"},
		Publish:   config.PublishConfig{MaxBatch: 20, Delay: 50 * time.Millisecond},
		RateLimit: config.RateLimitConfig{Generate: config.WindowConfig{Limit: 3, Window: time.Minute}},
	}
}

func TestContainer_GetIssueGenerator(t *testing.T) {
	c := NewContainer(testConfig(), nil)
	var built *stubProvider
	require.NoError(t, c.RegisterAIProvider("anthropic", func(_ context.Context, s ai.ProviderSettings) (ai.Provider, error) {
		built = &stubProvider{settings: s}
		return built, nil
	}))

	gen, err := c.GetIssueGenerator(context.Background())
	require.NoError(t, err)
	again, err := c.GetIssueGenerator(context.Background())
	require.NoError(t, err)

	assert.Same(t, gen, again)
	assert.Equal(t, ai.ProviderSettings{APIKey: "sk-test", Model: "claude-opus-4-5"}, built.settings)
}

func TestContainer_GetIssueGenerator_MissingKey(t *testing.T) {
	cfg := testConfig()
	cfg.Anthropic.APIKey = ""
	c := NewContainer(cfg, nil)
	require.NoError(t, c.RegisterAIProvider("anthropic", func(context.Context, ai.ProviderSettings) (ai.Provider, error) {
		return &stubProvider{}, nil
	}))

	_, err := c.GetIssueGenerator(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrAPIKeyMissing)
}

func TestContainer_GetIssueGenerator_UnknownProvider(t *testing.T) {
	cfg := testConfig()
	cfg.AI.Provider = config.AIGemini
	cfg.Gemini.APIKey = "g-key"
	c := NewContainer(cfg, nil)

	_, err := c.GetIssueGenerator(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrProviderNotSupported)
}

func TestContainer_LimiterAndPublishOptions(t *testing.T) {
	c := NewContainer(testConfig(), nil)

	l := c.GetLimiter()
	assert.Same(t, l, c.GetLimiter())
	assert.Equal(t, 3, l.Limit())
	assert.Equal(t, time.Minute, l.Window())

	opts := c.PublishOptions()
	assert.Equal(t, 20, opts.MaxBatch)
	assert.Equal(t, publisher.FixedDelay(50*time.Millisecond), opts.Pacer)
}

func TestContainer_ClientFactory(t *testing.T) {
	c := NewContainer(testConfig(), nil)
	assert.NotNil(t, c.ClientFactory()("o", "r", "tok"))
}

func TestContainer_APIDeps(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = "jwt"
	cfg.Server.FrontendURL = "https://app.example"
	c := NewContainer(cfg, nil)
	require.NoError(t, c.RegisterAIProvider("anthropic", func(context.Context, ai.ProviderSettings) (ai.Provider, error) {
		return &stubProvider{}, nil
	}))

	deps, err := c.APIDeps(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, deps.Generator)
	assert.Same(t, c.GetLimiter(), deps.Limiter)
	assert.Equal(t, "jwt", deps.JWTSecret)
	assert.Equal(t, "https://app.example", deps.FrontendURL)
	assert.Equal(t, 20, deps.Publish.MaxBatch)
}

func TestContainer_MCPDeps_WithoutProvider(t *testing.T) {
	cfg := testConfig()
	cfg.GitHub.Token = "ghp"
	c := NewContainer(cfg, nil)

	deps, err := c.MCPDeps(context.Background(), "v1.2.3")

	require.NoError(t, err)
	assert.Nil(t, deps.Generator)
	assert.Equal(t, "ghp", deps.GitHubToken)
	assert.Equal(t, "v1.2.3", deps.Version)
	assert.NotNil(t, deps.Clients)
}
