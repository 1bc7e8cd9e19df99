package gemini

import (
	"strings"

	"google.golang.org/genai"

	"github.com/DorianABDS/spec-to-issues/internal/ai"
	"github.com/DorianABDS/spec-to-issues/internal/models"
)

// extractUsage extracts usage metadata from the Gemini response
func extractUsage(resp *genai.GenerateContentResponse) *models.TokenUsage {
	if resp == nil || resp.UsageMetadata == nil {
		return nil
	}
	return &models.TokenUsage{
		InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
		OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
	}
}

// GetGenerateConfig maps a completion request onto Gemini generation settings.
func GetGenerateConfig(req ai.CompletionRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature:      float32Ptr(0.3),
		ResponseMIMEType: "application/json",
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	return config
}

func float32Ptr(f float32) *float32 {
	return &f
}

// formatResponse joins the text parts of every candidate, skipping thoughts.
func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var formatted strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.Thought || part.Text == "" {
				continue
			}
			formatted.WriteString(part.Text)
		}
	}
	return formatted.String()
}
