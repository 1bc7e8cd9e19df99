package issues

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/models"
	"github.com/DorianABDS/spec-to-issues/internal/regex"
)

// LoadTeamConfig reads a team file. YAML and JSON are both accepted; an empty
// path yields an empty roster.
func LoadTeamConfig(path string) (models.TeamConfig, error) {
	var team models.TeamConfig
	if path == "" {
		return team, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return team, fmt.Errorf("error reading team file: %w", err)
	}
	if err := yaml.Unmarshal(data, &team); err != nil {
		return team, domainErrors.ErrTeamConfigRequired.
			WithError(err).
			WithContext("detail", filepath.Base(path))
	}
	for i, m := range team.Members {
		if match := regex.GitHubHandle.FindStringSubmatch(m.GitHubHandle); match != nil {
			team.Members[i].GitHubHandle = match[1]
		}
	}
	return team, nil
}

// ReadIssues loads a JSON array of issues as written by WriteIssues or returned by the API.
// A {"issues": [...]} envelope is accepted too.
func ReadIssues(path string) ([]models.GeneratedIssue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading issues file: %w", err)
	}
	var issues []models.GeneratedIssue
	if err := json.Unmarshal(data, &issues); err == nil {
		return issues, nil
	}
	var envelope struct {
		Issues []models.GeneratedIssue `json:"issues"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, domainErrors.ErrIssuesRequired.WithError(err)
	}
	return envelope.Issues, nil
}

// WriteIssues writes issues as indented JSON.
func WriteIssues(path string, issues []models.GeneratedIssue) error {
	if issues == nil {
		issues = []models.GeneratedIssue{}
	}
	data, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding issues: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("error writing issues file: %w", err)
	}
	return nil
}

// ParseRepo splits an owner/name reference.
func ParseRepo(slug string) (owner, repo string, ok bool) {
	m := regex.RepoSlug.FindStringSubmatch(slug)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
