package ai

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/models"
)

func TestStripJSONFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced json", "```json\n{\"issues\":[]}\n```", `{"issues":[]}`},
		{"bare fence", "```\n{}\n```", "{}"},
		{"no fence", "  {}  ", "{}"},
		{"fence in middle", "{\"a\":\"x```y\"}", `{"a":"xy"}`},
		{"uppercase tag survives", "```JSON{}```", "JSON{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripJSONFences(tt.in))
		})
	}
}

func TestParseIssues(t *testing.T) {
	raw := "```json\n" + `{"issues":[
		{"title":"Login screen","body":"Build it","acceptance_criteria":["shows form"],"labels":["ui-design"],
		 "assignees":["ana"],"milestone":"MVP","priority":"haute","estimated_effort":"2-3h"},
		{"title":"","priority":"urgent","milestone":""}
	]}` + "\n```"

	issues, err := ParseIssues(raw)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	first := issues[0]
	assert.Empty(t, first.ID)
	assert.Equal(t, "Login screen", first.Title)
	assert.Equal(t, []string{"shows form"}, first.AcceptanceCriteria)
	assert.Equal(t, "MVP", first.MilestoneTitle())
	assert.Equal(t, models.PriorityHigh, first.Priority)
	assert.Equal(t, "2-3h", *first.EstimatedEffort)

	second := issues[1]
	assert.Equal(t, models.DefaultTitle, second.Title)
	assert.Equal(t, "", second.Body)
	assert.Equal(t, []string{}, second.Labels)
	assert.Nil(t, second.Milestone)
	assert.Nil(t, second.EstimatedEffort)
	assert.Equal(t, models.PriorityMedium, second.Priority)
}

func TestParseIssues_EmptyList(t *testing.T) {
	issues, err := ParseIssues(`{"issues": []}`)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestParseIssues_FormatErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"prose", "Sorry, I cannot help with that."},
		{"missing issues key", `{"tasks": []}`},
		{"null issues", `{"issues": null}`},
		{"issues not an array", `{"issues": "none"}`},
		{"labels wrong type", `{"issues": [{"title": "x", "labels": "bug"}]}`},
		{"truncated", `{"issues": [{"title": "x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIssues(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainErrors.ErrGenerationFormat))
			assert.Equal(t, domainErrors.TypeAI, domainErrors.TypeOf(err))
		})
	}
}

func TestParseIssues_ExcerptCapped(t *testing.T) {
	raw := strings.Repeat("é", 500)

	_, err := ParseIssues(raw)
	require.Error(t, err)

	var appErr *domainErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, strings.Repeat("é", 200), appErr.Context["detail"])
}

func TestProperty_ParsedIssuesAreNormalized(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 5).Draw(rt, "n")
		var parts []string
		for i := 0; i < n; i++ {
			title := rapid.SampledFrom([]string{`""`, `"A"`, `null`}).Draw(rt, "title")
			priority := rapid.SampledFrom([]string{`"haute"`, `"BASSE"`, `""`, `"?"`, `null`}).Draw(rt, "priority")
			milestone := rapid.SampledFrom([]string{`""`, `"MVP"`, `null`}).Draw(rt, "milestone")
			parts = append(parts, `{"title":`+title+`,"priority":`+priority+`,"milestone":`+milestone+`}`)
		}
		raw := `{"issues":[` + strings.Join(parts, ",") + `]}`

		issues, err := ParseIssues(raw)
		if err != nil {
			rt.Fatalf("unexpected error for %s: %v", raw, err)
		}
		if len(issues) != n {
			rt.Fatalf("got %d issues, want %d", len(issues), n)
		}
		for _, issue := range issues {
			if !assert.ObjectsAreEqual(issue, issue.Normalize()) {
				rt.Fatalf("parsed issue is not normalized: %#v", issue)
			}
		}
	})
}
