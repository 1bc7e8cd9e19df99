package ai

import (
	"context"

	"github.com/DorianABDS/spec-to-issues/internal/models"
)

// CompletionRequest is one single-turn exchange with a chat model.
type CompletionRequest struct {
	System    string
	Prompt    string
	MaxTokens int
}

// Completion is the model answer: every text block joined in order.
type Completion struct {
	Text  string
	Model string
	Usage *models.TokenUsage
}

// Provider sends one completion request to an LLM backend.
// Implementations must be safe for concurrent use.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)

	// Name returns the provider name (e.g.: "anthropic", "gemini")
	Name() string
}
