package publisher

import "github.com/DorianABDS/spec-to-issues/internal/models"

// DryRun reports what Publish would create without touching GitHub.
func DryRun(issues []models.GeneratedIssue) models.Preview {
	items := make([]models.PreviewItem, 0, len(issues))
	for _, raw := range issues {
		issue := raw.Normalize()
		items = append(items, models.PreviewItem{
			Title:     issue.Title,
			Labels:    issue.Labels,
			Assignees: issue.Assignees,
			Milestone: issue.Milestone,
			Priority:  issue.Priority,
		})
	}
	return models.Preview{
		Items:  items,
		Total:  len(items),
		DryRun: true,
	}
}
