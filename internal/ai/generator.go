package ai

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/logger"
	"github.com/DorianABDS/spec-to-issues/internal/models"
)

// DefaultMaxTokens caps the output of one generation call.
const DefaultMaxTokens = 8192

// GenerationRequest is one document to turn into issues.
type GenerationRequest struct {
	Content     string
	Team        models.TeamConfig
	ProjectName string
	ProjectType string
}

// GenerationResult carries the issues in model order plus call metadata.
type GenerationResult struct {
	Issues    []models.GeneratedIssue `json:"issues"`
	ModelUsed string                  `json:"model_used"`
	Usage     *models.TokenUsage      `json:"usage,omitempty"`
}

// IssueGenerator turns a document into issues with exactly one provider call.
type IssueGenerator struct {
	provider   Provider
	prompts    *PromptBuilder
	system     string
	maxTokens  int
	calculator *Calculator
	newID      func() string
}

type IssueGeneratorOption func(*IssueGenerator)

func WithPromptBuilder(b *PromptBuilder) IssueGeneratorOption {
	return func(g *IssueGenerator) {
		g.prompts = b
	}
}

func WithMaxTokens(n int) IssueGeneratorOption {
	return func(g *IssueGenerator) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

func WithSystemPrompt(system string) IssueGeneratorOption {
	return func(g *IssueGenerator) {
		g.system = system
	}
}

func WithCalculator(c *Calculator) IssueGeneratorOption {
	return func(g *IssueGenerator) {
		g.calculator = c
	}
}

// WithIDGenerator replaces ULID generation, mostly for tests.
func WithIDGenerator(fn func() string) IssueGeneratorOption {
	return func(g *IssueGenerator) {
		g.newID = fn
	}
}

func NewIssueGenerator(provider Provider, opts ...IssueGeneratorOption) *IssueGenerator {
	g := &IssueGenerator{
		provider:   provider,
		prompts:    NewPromptBuilder(PromptOptions{}),
		system:     SystemPrompt,
		maxTokens:  DefaultMaxTokens,
		calculator: NewCalculator(),
		newID:      func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the prompt, calls the provider once and parses the answer.
// Provider failures and unparseable answers are returned as is; nothing is retried.
func (g *IssueGenerator) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	if g.provider == nil {
		return nil, domainErrors.ErrAPIKeyMissing
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, domainErrors.ErrContentRequired
	}

	log := logger.FromContext(ctx)
	prompt := g.prompts.Build(PromptInput{
		Content:     req.Content,
		Team:        req.Team,
		ProjectName: req.ProjectName,
		ProjectType: req.ProjectType,
	})

	log.Debug("calling AI provider for issue generation",
		"provider", g.provider.Name(),
		"prompt_length", len(prompt),
		"active_members", len(req.Team.ActiveMembers()))

	start := time.Now()
	completion, err := g.provider.Complete(ctx, CompletionRequest{
		System:    g.system,
		Prompt:    prompt,
		MaxTokens: g.maxTokens,
	})
	if err != nil {
		log.Error("issue generation call failed", "error", err, "provider", g.provider.Name())
		return nil, wrapProviderError(err)
	}

	issues, err := ParseIssues(completion.Text)
	if err != nil {
		log.Warn("model answer is not valid issue JSON",
			"response_length", len(completion.Text),
			"model", completion.Model)
		return nil, err
	}

	for i := range issues {
		issues[i].ID = g.newID()
	}

	usage := completion.Usage
	if usage != nil {
		usage.Model = completion.Model
		usage.DurationMs = time.Since(start).Milliseconds()
		usage.CostUSD = g.calculator.EstimateCost(g.provider.Name(), completion.Model, usage.InputTokens, usage.OutputTokens)
	}

	log.Info("issues generated",
		"count", len(issues),
		"model", completion.Model,
		"duration_ms", time.Since(start).Milliseconds())

	return &GenerationResult{
		Issues:    issues,
		ModelUsed: completion.Model,
		Usage:     usage,
	}, nil
}

func wrapProviderError(err error) error {
	if domainErrors.TypeOf(err) == domainErrors.TypeAI {
		return err
	}
	return domainErrors.ErrAIGeneration.WithError(err)
}
