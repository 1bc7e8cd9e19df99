package di

import (
	"context"
	"sync"

	"github.com/DorianABDS/spec-to-issues/internal/ai"
	"github.com/DorianABDS/spec-to-issues/internal/api"
	"github.com/DorianABDS/spec-to-issues/internal/config"
	"github.com/DorianABDS/spec-to-issues/internal/i18n"
	"github.com/DorianABDS/spec-to-issues/internal/logger"
	"github.com/DorianABDS/spec-to-issues/internal/mcp"
	"github.com/DorianABDS/spec-to-issues/internal/publisher"
	"github.com/DorianABDS/spec-to-issues/internal/ratelimit"
	"github.com/DorianABDS/spec-to-issues/internal/vcs"
	"github.com/DorianABDS/spec-to-issues/internal/vcs/github"
)

// Container builds the long-lived collaborators of every entry point from the configuration.
type Container struct {
	config       *config.Config
	translations *i18n.Translations

	aiRegistry *ai.Registry
	clients    vcs.ClientFactory

	mu        sync.Mutex
	generator *ai.IssueGenerator
	limiter   *ratelimit.Limiter
}

func NewContainer(cfg *config.Config, trans *i18n.Translations) *Container {
	return &Container{
		config:       cfg,
		translations: trans,
		aiRegistry:   ai.NewRegistry(),
	}
}

func (c *Container) Config() *config.Config { return c.config }

func (c *Container) Translations() *i18n.Translations { return c.translations }

// RegisterAIProvider registers an AI provider factory under name.
func (c *Container) RegisterAIProvider(name string, factory ai.ProviderFactory) error {
	return c.aiRegistry.Register(name, factory)
}

func (c *Container) GetAIRegistry() *ai.Registry {
	return c.aiRegistry
}

// SetClientFactory replaces the GitHub client factory, mostly for tests.
func (c *Container) SetClientFactory(f vcs.ClientFactory) {
	c.clients = f
}

// ClientFactory returns the factory building per-credential GitHub clients.
func (c *Container) ClientFactory() vcs.ClientFactory {
	if c.clients != nil {
		return c.clients
	}
	var opts []github.Option
	if c.config.GitHub.BaseURL != "" {
		opts = append(opts, github.WithBaseURL(c.config.GitHub.BaseURL))
	}
	return github.NewFactory(opts...)
}

// GetIssueGenerator returns the generator for the configured provider (lazy initialization).
func (c *Container) GetIssueGenerator(ctx context.Context) (*ai.IssueGenerator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generator != nil {
		return c.generator, nil
	}

	provider, err := c.aiRegistry.Create(ctx, string(c.config.AI.Provider), ai.ProviderSettings{
		APIKey:  c.config.ProviderAPIKey(),
		Model:   string(c.config.AI.Model),
		BaseURL: c.config.ProviderBaseURL(),
	})
	if err != nil {
		return nil, err
	}

	c.generator = ai.NewIssueGenerator(provider,
		ai.WithMaxTokens(c.config.AI.MaxTokens),
		ai.WithPromptBuilder(ai.NewPromptBuilder(ai.PromptOptions{
			MaxDocumentChars: c.config.AI.MaxDocumentChars,
		})),
	)
	return c.generator, nil
}

// GetLimiter returns the shared generation rate limiter.
func (c *Container) GetLimiter() *ratelimit.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.limiter == nil {
		c.limiter = ratelimit.New(c.config.RateLimit.Generate.Limit, c.config.RateLimit.Generate.Window)
	}
	return c.limiter
}

// PublishOptions maps the publish settings onto publisher options.
func (c *Container) PublishOptions() publisher.Options {
	return publisher.Options{
		MaxBatch: c.config.Publish.MaxBatch,
		Pacer:    publisher.FixedDelay(c.config.Publish.Delay),
	}
}

// optionalGenerator returns the generator, or nil when the provider cannot be built.
// Surfaces that only preview or publish keep working without AI credentials.
func (c *Container) optionalGenerator(ctx context.Context) *ai.IssueGenerator {
	gen, err := c.GetIssueGenerator(ctx)
	if err != nil {
		logger.Warn(ctx, "issue generator unavailable", "error", err)
		return nil
	}
	return gen
}

// APIDeps wires the HTTP API.
func (c *Container) APIDeps(ctx context.Context) (api.Deps, error) {
	deps := api.Deps{
		Clients:     c.ClientFactory(),
		Limiter:     c.GetLimiter(),
		Publish:     c.PublishOptions(),
		JWTSecret:   c.config.Auth.JWTSecret,
		FrontendURL: c.config.Server.FrontendURL,
	}
	// A nil *IssueGenerator must not end up inside the interface.
	if gen := c.optionalGenerator(ctx); gen != nil {
		deps.Generator = gen
	}
	return deps, nil
}

// MCPDeps wires the MCP tool server; publishing uses the configured GitHub token.
func (c *Container) MCPDeps(ctx context.Context, version string) (mcp.Deps, error) {
	deps := mcp.Deps{
		Clients:     c.ClientFactory(),
		GitHubToken: c.config.GitHub.Token,
		Publish:     c.PublishOptions(),
		Version:     version,
	}
	if gen := c.optionalGenerator(ctx); gen != nil {
		deps.Generator = gen
	}
	return deps, nil
}
