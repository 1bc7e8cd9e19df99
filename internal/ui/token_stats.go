package ui

import (
	"fmt"
	"io"

	"github.com/DorianABDS/spec-to-issues/internal/i18n"
	"github.com/DorianABDS/spec-to-issues/internal/models"
)

// PrintTokenUsage prints one line of token counts and estimated cost.
func PrintTokenUsage(w io.Writer, usage *models.TokenUsage, t *i18n.Translations) {
	if usage == nil {
		return
	}
	cost := "n/a"
	if usage.CostUSD > 0 {
		cost = fmt.Sprintf("$%.4f USD", usage.CostUSD)
	}
	msg := t.GetMessage("token_usage", 0, map[string]interface{}{
		"Input":  usage.InputTokens,
		"Output": usage.OutputTokens,
		"Cost":   cost,
	})
	_, _ = fmt.Fprintf(w, "%s %s", StatsEmoji, msg)
	if usage.DurationMs > 0 {
		_, _ = Dim.Fprintf(w, " %dms", usage.DurationMs)
	}
	_, _ = fmt.Fprintln(w)
}
