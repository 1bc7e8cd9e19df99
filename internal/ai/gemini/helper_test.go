package gemini

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"github.com/DorianABDS/spec-to-issues/internal/ai"
	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
)

func TestExtractUsage(t *testing.T) {
	t.Run("nil response", func(t *testing.T) {
		assert.Nil(t, extractUsage(nil))
	})

	t.Run("nil UsageMetadata", func(t *testing.T) {
		assert.Nil(t, extractUsage(&genai.GenerateContentResponse{}))
	})

	t.Run("valid UsageMetadata", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
				PromptTokenCount:     10,
				CandidatesTokenCount: 20,
				TotalTokenCount:      30,
			},
		}
		usage := extractUsage(resp)
		if assert.NotNil(t, usage) {
			assert.Equal(t, 10, usage.InputTokens)
			assert.Equal(t, 20, usage.OutputTokens)
			assert.Equal(t, 30, usage.TotalTokens)
		}
	})
}

func TestGetGenerateConfig(t *testing.T) {
	cfg := GetGenerateConfig(ai.CompletionRequest{System: "json only", MaxTokens: 8192})

	assert.Equal(t, float32(0.3), *cfg.Temperature)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	assert.Equal(t, int32(8192), cfg.MaxOutputTokens)
	if assert.NotNil(t, cfg.SystemInstruction) {
		assert.Equal(t, "json only", cfg.SystemInstruction.Parts[0].Text)
	}

	bare := GetGenerateConfig(ai.CompletionRequest{})
	assert.Nil(t, bare.SystemInstruction)
	assert.Zero(t, bare.MaxOutputTokens)
}

func TestFormatResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking about issues", Thought: true},
				{Text: `{"issues":`},
				{Text: `[]}`},
			}}},
			{Content: nil},
		},
	}

	assert.Equal(t, `{"issues":[]}`, formatResponse(resp))
	assert.Empty(t, formatResponse(nil))
	assert.Empty(t, formatResponse(&genai.GenerateContentResponse{}))
}

func TestClassifyError(t *testing.T) {
	assert.True(t, errors.Is(classifyError(errors.New("Error 429, RESOURCE_EXHAUSTED")), domainErrors.ErrQuotaExceeded))
	assert.Equal(t, domainErrors.TypeConfiguration, domainErrors.TypeOf(classifyError(errors.New("API key not valid"))))
	assert.True(t, errors.Is(classifyError(errors.New("boom")), domainErrors.ErrAIGeneration))
}

func TestNewGeminiProvider_DefaultModel(t *testing.T) {
	p := NewGeminiProvider(nil, "")
	assert.Equal(t, DefaultModel, p.GetModelName())
	assert.Equal(t, ProviderName, p.Name())
}
