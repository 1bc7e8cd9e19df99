package models

import "strings"

// Priority is the triage level the model assigns to an issue.
type Priority string

const (
	PriorityHigh   Priority = "haute"
	PriorityMedium Priority = "moyenne"
	PriorityLow    Priority = "basse"

	// DefaultTitle replaces a missing or blank title.
	DefaultTitle = "Sans titre"
)

// ParsePriority maps a model-provided value onto the enum.
// Unknown or empty values fall back to PriorityMedium.
func ParsePriority(raw string) Priority {
	switch p := Priority(strings.ToLower(strings.TrimSpace(raw))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p
	default:
		return PriorityMedium
	}
}

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// GeneratedIssue is the canonical unit produced by generation and consumed by publication.
// ID is assigned once at generation time and survives review edits.
type GeneratedIssue struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Body               string   `json:"body"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
	Labels             []string `json:"labels"`
	Assignees          []string `json:"assignees"`
	Milestone          *string  `json:"milestone"`
	Priority           Priority `json:"priority"`
	EstimatedEffort    *string  `json:"estimated_effort"`
}

// Normalize fills every defaulted field and leaves ID untouched.
// Applying it twice yields the same value as applying it once.
func (i GeneratedIssue) Normalize() GeneratedIssue {
	out := i
	if strings.TrimSpace(out.Title) == "" {
		out.Title = DefaultTitle
	}
	out.AcceptanceCriteria = nonNil(out.AcceptanceCriteria)
	out.Labels = nonNil(out.Labels)
	out.Assignees = nonNil(out.Assignees)
	out.Milestone = presentOrNil(out.Milestone)
	out.EstimatedEffort = presentOrNil(out.EstimatedEffort)
	out.Priority = ParsePriority(string(out.Priority))
	return out
}

// MilestoneTitle returns the milestone or "" when absent.
func (i GeneratedIssue) MilestoneTitle() string {
	if i.Milestone == nil {
		return ""
	}
	return *i.Milestone
}

// HasMilestone reports whether the issue targets a milestone.
func (i GeneratedIssue) HasMilestone() bool {
	return i.Milestone != nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func presentOrNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
