package config

type AI string

const (
	AIAnthropic AI = "anthropic"
	AIGemini    AI = "gemini"
)

type Model string

const (
	ModelClaudeOpus45   Model = "claude-opus-4-5"
	ModelClaudeSonnet45 Model = "claude-sonnet-4-5"
	ModelClaudeHaiku45  Model = "claude-haiku-4-5"

	ModelGeminiV25Pro       Model = "gemini-2.5-pro"
	ModelGeminiV25Flash     Model = "gemini-2.5-flash"
	ModelGeminiV25FlashLite Model = "gemini-2.5-flash-lite"
)

func SupportedAIs() []AI {
	return []AI{
		AIAnthropic,
		AIGemini,
	}
}

func ModelsForAI(ai AI) []Model {
	switch ai {
	case AIAnthropic:
		return []Model{
			ModelClaudeOpus45,
			ModelClaudeSonnet45,
			ModelClaudeHaiku45,
		}
	case AIGemini:
		return []Model{
			ModelGeminiV25Pro,
			ModelGeminiV25Flash,
			ModelGeminiV25FlashLite,
		}
	default:
		return []Model{}
	}
}

func DefaultModelForAI(ai AI) Model {
	models := ModelsForAI(ai)
	if len(models) == 0 {
		return ""
	}
	return models[0]
}

// IsSupportedAI reports whether ai names a provider this build can construct.
func IsSupportedAI(ai AI) bool {
	for _, s := range SupportedAIs() {
		if s == ai {
			return true
		}
	}
	return false
}
