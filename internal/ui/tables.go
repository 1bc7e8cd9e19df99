package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/DorianABDS/spec-to-issues/internal/i18n"
	"github.com/DorianABDS/spec-to-issues/internal/models"
	"github.com/DorianABDS/spec-to-issues/internal/regex"
)

// Table creates a new tablewriter configured with consistent styling.
func Table(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

func PriorityColor(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return Error.Sprint(string(p))
	case models.PriorityLow:
		return Success.Sprint(string(p))
	default:
		return Warning.Sprint(string(p))
	}
}

// PrintIssues lists generated issues, one row each.
func PrintIssues(w io.Writer, issues []models.GeneratedIssue, t *i18n.Translations) {
	table := Table(w, []string{
		"#",
		t.GetMessage("col_title", 0, nil),
		t.GetMessage("col_labels", 0, nil),
		t.GetMessage("col_assignees", 0, nil),
		t.GetMessage("col_milestone", 0, nil),
		t.GetMessage("col_priority", 0, nil),
	})
	for i, raw := range issues {
		issue := raw.Normalize()
		_ = table.Append([]string{
			fmt.Sprintf("%d", i+1),
			oneLine(issue.Title),
			strings.Join(issue.Labels, ", "),
			handles(issue.Assignees),
			issue.MilestoneTitle(),
			PriorityColor(issue.Priority),
		})
	}
	_ = table.Render()
}

func PrintPreview(w io.Writer, preview models.Preview, t *i18n.Translations) {
	table := Table(w, []string{
		t.GetMessage("col_title", 0, nil),
		t.GetMessage("col_labels", 0, nil),
		t.GetMessage("col_assignees", 0, nil),
		t.GetMessage("col_milestone", 0, nil),
		t.GetMessage("col_priority", 0, nil),
	})
	for _, item := range preview.Items {
		milestone := ""
		if item.Milestone != nil {
			milestone = *item.Milestone
		}
		_ = table.Append([]string{
			oneLine(item.Title),
			strings.Join(item.Labels, ", "),
			handles(item.Assignees),
			milestone,
			PriorityColor(item.Priority),
		})
	}
	_ = table.Render()
	PrintInfo(w, t.GetMessage("preview_total", preview.Total, map[string]interface{}{"Count": preview.Total}))
	PrintWarning(w, t.GetMessage("dry_run_notice", 0, nil))
}

// PrintCreationResult shows created issues with their URL, then failures.
func PrintCreationResult(w io.Writer, result *models.CreationResult, t *i18n.Translations) {
	if len(result.Created) > 0 {
		table := Table(w, []string{"#", t.GetMessage("col_title", 0, nil), t.GetMessage("col_url", 0, nil)})
		for _, c := range result.Created {
			_ = table.Append([]string{fmt.Sprintf("%d", c.Number), c.Title, c.URL})
		}
		_ = table.Render()
	}
	PrintSuccess(w, t.GetMessage("issues_created", result.TotalCreated, map[string]interface{}{"Count": result.TotalCreated}))

	if len(result.Failed) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w)
	table := Table(w, []string{t.GetMessage("col_title", 0, nil), t.GetMessage("col_error", 0, nil)})
	for _, f := range result.Failed {
		_ = table.Append([]string{f.Title, f.Error})
	}
	_ = table.Render()
	PrintError(w, t.GetMessage("issues_failed", len(result.Failed), map[string]interface{}{"Count": len(result.Failed)}))
}

func handles(logins []string) string {
	out := make([]string, len(logins))
	for i, l := range logins {
		out[i] = "@" + l
	}
	return strings.Join(out, ", ")
}

func oneLine(s string) string {
	return strings.TrimSpace(regex.Whitespace.ReplaceAllString(s, " "))
}
