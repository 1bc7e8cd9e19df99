package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func strPtr(s string) *string { return &s }

func TestParsePriority(t *testing.T) {
	tests := map[string]Priority{
		"haute":     PriorityHigh,
		" Moyenne ": PriorityMedium,
		"BASSE":     PriorityLow,
		"":          PriorityMedium,
		"urgent":    PriorityMedium,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParsePriority(in), in)
	}
}

func TestGeneratedIssue_Normalize(t *testing.T) {
	issue := GeneratedIssue{
		ID:              "keep-me",
		Title:           "  ",
		Milestone:       strPtr(""),
		EstimatedEffort: strPtr("2-3h"),
		Priority:        "Haute",
	}

	got := issue.Normalize()

	assert.Equal(t, "keep-me", got.ID)
	assert.Equal(t, DefaultTitle, got.Title)
	assert.Equal(t, []string{}, got.AcceptanceCriteria)
	assert.Equal(t, []string{}, got.Labels)
	assert.Equal(t, []string{}, got.Assignees)
	assert.Nil(t, got.Milestone)
	assert.False(t, got.HasMilestone())
	assert.Equal(t, "2-3h", *got.EstimatedEffort)
	assert.Equal(t, PriorityHigh, got.Priority)
}

func TestGeneratedIssue_JSONShape(t *testing.T) {
	data, err := json.Marshal(GeneratedIssue{Title: "A"}.Normalize())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Nil(t, m["milestone"])
	assert.Contains(t, m, "milestone")
	assert.Nil(t, m["estimated_effort"])
	assert.Equal(t, []any{}, m["labels"])
	assert.Equal(t, "moyenne", m["priority"])
}

func TestTeamConfig_ActiveMembers(t *testing.T) {
	team := TeamConfig{Members: []TeamMember{
		{Name: "Ana", Active: true},
		{Name: "Bob", Active: false},
		{Name: "Cid", Active: true},
	}}

	active := team.ActiveMembers()
	require.Len(t, active, 2)
	assert.Equal(t, "Ana", active[0].Name)
	assert.Equal(t, "Cid", active[1].Name)
}

func TestNewCreationResult_EmptyLists(t *testing.T) {
	data, err := json.Marshal(NewCreationResult())
	require.NoError(t, err)
	assert.JSONEq(t, `{"created":[],"failed":[],"total_created":0}`, string(data))
}

func optionalString(t *rapid.T, label string) *string {
	if rapid.Bool().Draw(t, label+"_present") {
		s := rapid.SampledFrom([]string{"", "MVP", "v1", "2-3h"}).Draw(t, label)
		return &s
	}
	return nil
}

func optionalStrings(t *rapid.T, label string) []string {
	if rapid.Bool().Draw(t, label+"_nil") {
		return nil
	}
	return rapid.SliceOfN(rapid.StringMatching(`[a-z-]{0,8}`), 0, 4).Draw(t, label)
}

func TestProperty_NormalizeIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		issue := GeneratedIssue{
			ID:                 rapid.StringMatching(`[0-9A-Z]{0,26}`).Draw(rt, "id"),
			Title:              rapid.SampledFrom([]string{"", " ", "Login", "Écran titre"}).Draw(rt, "title"),
			Body:               rapid.String().Draw(rt, "body"),
			AcceptanceCriteria: optionalStrings(rt, "criteria"),
			Labels:             optionalStrings(rt, "labels"),
			Assignees:          optionalStrings(rt, "assignees"),
			Milestone:          optionalString(rt, "milestone"),
			Priority:           Priority(rapid.SampledFrom([]string{"", "haute", "HAUTE", "moyenne", "basse", "x"}).Draw(rt, "priority")),
			EstimatedEffort:    optionalString(rt, "effort"),
		}

		once := issue.Normalize()
		twice := once.Normalize()

		if !assert.ObjectsAreEqual(once, twice) {
			rt.Fatalf("Normalize not idempotent:\n%#v\n%#v", once, twice)
		}
		if once.ID != issue.ID {
			rt.Fatalf("Normalize changed ID %q -> %q", issue.ID, once.ID)
		}
		if !once.Priority.Valid() {
			rt.Fatalf("priority %q outside enum", once.Priority)
		}
		if once.Milestone != nil && *once.Milestone == "" {
			rt.Fatalf("empty milestone survived normalization")
		}
	})
}
