package ai

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/DorianABDS/spec-to-issues/internal/models"
)

// DefaultMaxDocumentChars caps how much of the document reaches the model.
const DefaultMaxDocumentChars = 15000

// SystemPrompt is the fixed directive sent alongside every generation prompt.
const SystemPrompt = `Tu es un expert en gestion de projet et développement de jeux Roblox / logiciels.
Tu analyses des GDD (Game Design Documents) et cahiers des charges pour les transformer en issues GitHub structurées et actionnables.

Tes issues doivent être :
- Claires, concises et directement actionnables
- Correctement découpées (une tâche = une issue)
- En français
- Avec des critères d'acceptation mesurables

Tu réponds UNIQUEMENT avec un JSON valide, sans texte avant ou après. Jamais de markdown, jamais de backticks.`

const (
	noMembersText = "Aucun membre défini"
	noRulesText   = "Pas de règles définies, laisser assignees vide"
)

// DefaultSuggestedLabels is the label vocabulary offered to the model.
var DefaultSuggestedLabels = []string{
	"scripting", "building", "ui-design", "3d-art", "game-design",
	"bug", "feature", "enhancement", "documentation", "sound-design",
}

const generationTemplate = `Analyse le document suivant et génère une liste d'issues GitHub.
{{if .ProjectName}}
Projet : {{.ProjectName}}{{end}}{{if .ProjectType}}
Type : {{.ProjectType}}{{end}}

ÉQUIPE DISPONIBLE :
{{.Members}}

RÈGLES D'ASSIGNATION :
{{.Rules}}

DOCUMENT À ANALYSER :
---
{{.Document}}
---

Génère un JSON avec cette structure exacte :
{
  "issues": [
    {
      "title": "Titre court et descriptif de l'issue",
      "body": "Description détaillée en Markdown avec contexte, objectif et détails techniques",
      "acceptance_criteria": ["Critère 1 vérifiable", "Critère 2 vérifiable"],
      "labels": ["label1", "label2"],
      "assignees": ["github_handle"],
      "milestone": "Nom du milestone ou null",
      "priority": "haute | moyenne | basse",
      "estimated_effort": "2-3h ou null"
    }
  ]
}

Labels suggérés selon le type de tâche : {{.Labels}}.
Priorité haute = bloquant ou critique. Moyenne = important. Basse = nice-to-have.
Découpe finement : évite les issues trop larges. Préfère 10 issues précises à 3 issues vagues.`

var generationTmpl = template.Must(template.New("generate-issues").Parse(generationTemplate))

// PromptOptions tunes a PromptBuilder. Zero values select the defaults.
type PromptOptions struct {
	MaxDocumentChars int
	SuggestedLabels  []string
}

// PromptInput is everything a generation prompt is rendered from.
type PromptInput struct {
	Content     string
	Team        models.TeamConfig
	ProjectName string
	ProjectType string
}

type promptData struct {
	ProjectName string
	ProjectType string
	Members     string
	Rules       string
	Document    string
	Labels      string
}

// PromptBuilder renders generation prompts. It holds no mutable state.
type PromptBuilder struct {
	maxChars int
	labels   []string
}

func NewPromptBuilder(opts PromptOptions) *PromptBuilder {
	maxChars := opts.MaxDocumentChars
	if maxChars <= 0 {
		maxChars = DefaultMaxDocumentChars
	}
	labels := opts.SuggestedLabels
	if len(labels) == 0 {
		labels = DefaultSuggestedLabels
	}
	return &PromptBuilder{
		maxChars: maxChars,
		labels:   append([]string(nil), labels...),
	}
}

// Build renders the prompt for in. The same input always yields the same string.
func (b *PromptBuilder) Build(in PromptInput) string {
	data := promptData{
		ProjectName: in.ProjectName,
		ProjectType: in.ProjectType,
		Members:     renderMembers(in.Team.ActiveMembers()),
		Rules:       renderRules(in.Team.AssignmentRules),
		Document:    Truncate(in.Content, b.maxChars),
		Labels:      strings.Join(b.labels, ", "),
	}

	var buf bytes.Buffer
	if err := generationTmpl.Execute(&buf, data); err != nil {
		// Only reachable if the template itself is broken.
		panic(fmt.Sprintf("render generation prompt: %v", err))
	}
	return buf.String()
}

// Truncate keeps the first max runes of s.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := 0
	for i := range s {
		if runes == max {
			return s[:i]
		}
		runes++
	}
	return s
}

// FormatMember renders one roster line: "- name (@handle): role1, role2".
func FormatMember(m models.TeamMember) string {
	roles := make([]string, len(m.Roles))
	for i, r := range m.Roles {
		roles[i] = string(r)
	}
	return fmt.Sprintf("- %s (@%s): %s", m.Name, m.GitHubHandle, strings.Join(roles, ", "))
}

func renderMembers(members []models.TeamMember) string {
	if len(members) == 0 {
		return noMembersText
	}
	lines := make([]string, len(members))
	for i, m := range members {
		lines[i] = FormatMember(m)
	}
	return strings.Join(lines, "\n")
}

func renderRules(rules map[string][]models.RoleTag) string {
	if len(rules) == 0 {
		return noRulesText
	}
	tasks := make([]string, 0, len(rules))
	for task := range rules {
		tasks = append(tasks, task)
	}
	sort.Strings(tasks)

	lines := make([]string, len(tasks))
	for i, task := range tasks {
		roles := make([]string, len(rules[task]))
		for j, r := range rules[task] {
			roles[j] = string(r)
		}
		lines[i] = fmt.Sprintf("- Tâches %q → assignées aux rôles : %s", task, strings.Join(roles, ", "))
	}
	return strings.Join(lines, "\n")
}
