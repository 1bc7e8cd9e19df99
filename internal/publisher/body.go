package publisher

import (
	"strings"

	"github.com/DorianABDS/spec-to-issues/internal/models"
)

// ComposeBody renders the issue body sent to GitHub. The priority footer is always present.
func ComposeBody(issue models.GeneratedIssue) string {
	var b strings.Builder
	b.WriteString(issue.Body)

	if len(issue.AcceptanceCriteria) > 0 {
		b.WriteString("\n\n## ✅ Critères d'acceptation\n")
		for i, c := range issue.AcceptanceCriteria {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("- [ ] ")
			b.WriteString(c)
		}
	}

	if issue.EstimatedEffort != nil && *issue.EstimatedEffort != "" {
		b.WriteString("\n\n**Effort estimé :** ")
		b.WriteString(*issue.EstimatedEffort)
	}

	b.WriteString("\n\n**Priorité :** ")
	b.WriteString(string(issue.Priority))
	return b.String()
}
