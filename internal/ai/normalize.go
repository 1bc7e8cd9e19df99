package ai

import (
	"encoding/json"
	"strings"

	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/models"
	"github.com/DorianABDS/spec-to-issues/internal/regex"
)

// rawExcerptRunes is how much of a bad answer is echoed back in errors.
const rawExcerptRunes = 200

type rawIssue struct {
	Title              string   `json:"title"`
	Body               string   `json:"body"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
	Labels             []string `json:"labels"`
	Assignees          []string `json:"assignees"`
	Milestone          *string  `json:"milestone"`
	Priority           string   `json:"priority"`
	EstimatedEffort    *string  `json:"estimated_effort"`
}

type rawEnvelope struct {
	Issues *[]rawIssue `json:"issues"`
}

// StripJSONFences removes every "```json" and "```" marker and trims the result.
func StripJSONFences(s string) string {
	return strings.TrimSpace(regex.JSONFence.ReplaceAllString(s, ""))
}

// ParseIssues decodes a model answer into normalized issues without IDs.
// Anything but a well-typed {"issues": [...]} object is a format error.
func ParseIssues(raw string) ([]models.GeneratedIssue, error) {
	clean := StripJSONFences(raw)

	var env rawEnvelope
	if err := json.Unmarshal([]byte(clean), &env); err != nil {
		return nil, formatError(raw, err)
	}
	if env.Issues == nil {
		return nil, formatError(raw, nil)
	}

	issues := make([]models.GeneratedIssue, 0, len(*env.Issues))
	for _, r := range *env.Issues {
		issues = append(issues, models.GeneratedIssue{
			Title:              r.Title,
			Body:               r.Body,
			AcceptanceCriteria: r.AcceptanceCriteria,
			Labels:             r.Labels,
			Assignees:          r.Assignees,
			Milestone:          r.Milestone,
			Priority:           models.Priority(r.Priority),
			EstimatedEffort:    r.EstimatedEffort,
		}.Normalize())
	}
	return issues, nil
}

func formatError(raw string, cause error) error {
	appErr := domainErrors.ErrGenerationFormat.WithContext("detail", Truncate(raw, rawExcerptRunes))
	if cause != nil {
		appErr = appErr.WithError(cause)
	}
	return appErr
}
