package config

import "log/slog"

const (
	LangFR = "fr"
	LangEN = "en"
)

// GetLocaleConfig returns lang when a catalogue exists for it, French otherwise.
func GetLocaleConfig(lang string) string {
	switch lang {
	case LangFR, LangEN:
		return lang
	case "":
		return LangFR
	default:
		slog.Warn("unsupported language, falling back to french", "language", lang)
		return LangFR
	}
}
