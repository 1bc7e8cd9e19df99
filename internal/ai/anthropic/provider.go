package anthropic

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/DorianABDS/spec-to-issues/internal/ai"
	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/logger"
	"github.com/DorianABDS/spec-to-issues/internal/models"
)

const (
	ProviderName = "anthropic"
	DefaultModel = "claude-opus-4-5"
)

var _ ai.Provider = (*Provider)(nil)

// Provider sends completions to the Anthropic Messages API.
type Provider struct {
	api   *anthropic.Client
	model anthropic.Model
}

// New builds a provider from settings. Extra request options are appended
// after the key and base URL.
func New(settings ai.ProviderSettings, opts ...option.RequestOption) *Provider {
	reqOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if settings.APIKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(settings.APIKey))
	}
	if settings.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(settings.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)

	model := settings.Model
	if model == "" {
		model = DefaultModel
	}

	client := anthropic.NewClient(reqOpts...)
	return &Provider{
		api:   &client,
		model: anthropic.Model(model),
	}
}

// Factory adapts New to the provider registry.
func Factory(_ context.Context, settings ai.ProviderSettings) (ai.Provider, error) {
	return New(settings), nil
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	log := logger.FromContext(ctx)

	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.System},
		}
	}

	msg, err := p.api.Messages.New(ctx, params)
	if err != nil {
		log.Error("anthropic API call failed", "error", err, "model", string(p.model))
		return nil, classifyError(err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	log.Debug("anthropic response received",
		"model", string(msg.Model),
		"stop_reason", string(msg.StopReason),
		"response_length", text.Len())

	if text.Len() == 0 {
		return nil, domainErrors.ErrEmptyCompletion.WithContext("model", string(msg.Model))
	}

	return &ai.Completion{
		Text:  text.String(),
		Model: string(msg.Model),
		Usage: &models.TokenUsage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
			TotalTokens:  int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}

func classifyError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return domainErrors.ErrAPIKeyMissing.
				WithMessage("Anthropic API key is invalid").
				WithError(err)
		case http.StatusTooManyRequests, 529:
			return domainErrors.ErrQuotaExceeded.WithError(err)
		}
	}
	return domainErrors.ErrAIGeneration.WithError(err)
}
