package gemini

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/DorianABDS/spec-to-issues/internal/ai"
	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/logger"
)

const (
	ProviderName = "gemini"
	DefaultModel = "gemini-2.5-pro"
)

var _ ai.Provider = (*GeminiProvider)(nil)

// GeminiProvider sends completions to the Gemini API.
type GeminiProvider struct {
	Client *genai.Client
	model  string
}

// NewGeminiProvider wraps an existing client.
func NewGeminiProvider(client *genai.Client, model string) *GeminiProvider {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiProvider{
		Client: client,
		model:  model,
	}
}

// Factory builds a client from settings for the provider registry.
func Factory(ctx context.Context, settings ai.ProviderSettings) (ai.Provider, error) {
	cfg := &genai.ClientConfig{
		APIKey:  settings.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if settings.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: settings.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error creating AI client", err)
	}
	return NewGeminiProvider(client, settings.Model), nil
}

func (g *GeminiProvider) Name() string {
	return ProviderName
}

// GetModelName returns the configured model id.
func (g *GeminiProvider) GetModelName() string {
	return g.model
}

func (g *GeminiProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	log := logger.FromContext(ctx)

	resp, err := g.Client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), GetGenerateConfig(req))
	if err != nil {
		log.Error("gemini API call failed", "error", err, "model", g.model)
		return nil, classifyError(err)
	}

	text := formatResponse(resp)
	if text == "" {
		return nil, domainErrors.ErrEmptyCompletion.WithContext("model", g.model)
	}

	model := g.model
	if resp.ModelVersion != "" {
		model = resp.ModelVersion
	}

	log.Debug("gemini response received",
		"model", model,
		"response_length", len(text))

	return &ai.Completion{
		Text:  text,
		Model: model,
		Usage: extractUsage(resp),
	}, nil
}

func classifyError(err error) error {
	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "quota"),
		strings.Contains(errMsg, "rate limit"),
		strings.Contains(errMsg, "resource exhausted"),
		strings.Contains(errMsg, "resource_exhausted"):
		return domainErrors.ErrQuotaExceeded.WithError(err)
	case strings.Contains(errMsg, "api key"),
		strings.Contains(errMsg, "unauthorized"),
		strings.Contains(errMsg, "permission_denied"):
		return domainErrors.ErrAPIKeyMissing.
			WithMessage("Gemini API key is invalid").
			WithError(err)
	default:
		return domainErrors.ErrAIGeneration.WithError(err)
	}
}
