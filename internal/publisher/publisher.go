package publisher

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/logger"
	"github.com/DorianABDS/spec-to-issues/internal/models"
	"github.com/DorianABDS/spec-to-issues/internal/vcs"
)

const (
	// DefaultMaxBatch is the largest list accepted by one Publish call.
	DefaultMaxBatch = 50
	// DefaultDelay is the pause after each created issue.
	DefaultDelay = 200 * time.Millisecond
)

// Options configures a Publisher. Zero values select the defaults.
type Options struct {
	LabelColors       map[string]string
	DefaultLabelColor string
	Pacer             Pacer
	MaxBatch          int
}

// Publisher creates a reviewed batch of issues on one repository:
// labels first, then milestones, then the issues in input order.
type Publisher struct {
	tracker      vcs.IssueTracker
	labelColors  map[string]string
	defaultColor string
	pacer        Pacer
	maxBatch     int
}

func New(tracker vcs.IssueTracker, opts Options) *Publisher {
	colors := opts.LabelColors
	if colors == nil {
		colors = DefaultLabelColors()
	}
	defaultColor := opts.DefaultLabelColor
	if defaultColor == "" {
		defaultColor = DefaultLabelColor
	}
	pacer := opts.Pacer
	if pacer == nil {
		pacer = FixedDelay(DefaultDelay)
	}
	maxBatch := opts.MaxBatch
	if maxBatch <= 0 {
		maxBatch = DefaultMaxBatch
	}
	return &Publisher{
		tracker:      tracker,
		labelColors:  colors,
		defaultColor: defaultColor,
		pacer:        pacer,
		maxBatch:     maxBatch,
	}
}

// ValidateBatch checks the batch size against max without any remote call.
func ValidateBatch(issues []models.GeneratedIssue, max int) error {
	if len(issues) == 0 {
		return domainErrors.ErrNoIssues
	}
	if len(issues) > max {
		err := domainErrors.ErrTooManyIssues.WithContext("count", len(issues))
		if max != DefaultMaxBatch {
			err = err.WithMessage(fmt.Sprintf("Maximum %d issues per batch", max))
		}
		return err
	}
	return nil
}

// Publish runs the whole batch and returns what was created and what failed.
// Only validation and repository access problems are returned as errors;
// once issue creation starts every item is attempted, even if ctx is cancelled.
func (p *Publisher) Publish(ctx context.Context, issues []models.GeneratedIssue) (*models.CreationResult, error) {
	if err := ValidateBatch(issues, p.maxBatch); err != nil {
		return nil, err
	}

	normalized := make([]models.GeneratedIssue, len(issues))
	for i, issue := range issues {
		normalized[i] = issue.Normalize()
	}

	if err := p.tracker.CheckRepository(ctx); err != nil {
		logger.Error(ctx, "repository check failed", err)
		return nil, err
	}

	batchCtx := context.WithoutCancel(ctx)
	start := time.Now()

	p.ensureLabels(batchCtx, normalized)
	milestones := p.ensureMilestones(batchCtx, normalized)
	result := p.createIssues(batchCtx, normalized, milestones)

	logger.Info(ctx, "publish finished",
		"total", len(normalized),
		"created", len(result.Created),
		"failed", len(result.Failed),
		"duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

// ensureLabels creates every distinct label once. Errors are expected for
// labels that already exist and are ignored.
func (p *Publisher) ensureLabels(ctx context.Context, issues []models.GeneratedIssue) {
	for _, name := range LabelUnion(issues) {
		color := LabelColor(p.labelColors, name, p.defaultColor)
		if err := p.tracker.CreateLabel(ctx, name, color, ""); err != nil {
			logger.Debug(ctx, "label not created, assuming it exists", "label", name, "error", err)
		}
	}
}

// ensureMilestones resolves each distinct milestone title to a number.
// Titles that could not be found or created are left out of the map.
func (p *Publisher) ensureMilestones(ctx context.Context, issues []models.GeneratedIssue) map[string]int {
	resolved := make(map[string]int)
	for _, title := range MilestoneTitles(issues) {
		number, found, err := p.tracker.FindMilestone(ctx, title)
		if err == nil && !found {
			number, err = p.tracker.CreateMilestone(ctx, title)
		}
		if err != nil {
			logger.Warn(ctx, "milestone unavailable, issues will be created without it",
				"milestone", title, "error", err)
			continue
		}
		resolved[title] = number
	}
	return resolved
}

func (p *Publisher) createIssues(ctx context.Context, issues []models.GeneratedIssue, milestones map[string]int) *models.CreationResult {
	q := newCreationQueue(p.tracker, p.pacer)
	for _, issue := range issues {
		q.submit(ctx, draftFor(issue, milestones))
	}
	return q.close()
}

func draftFor(issue models.GeneratedIssue, milestones map[string]int) models.IssueDraft {
	draft := models.IssueDraft{
		Title:     issue.Title,
		Body:      ComposeBody(issue),
		Labels:    issue.Labels,
		Assignees: issue.Assignees,
	}
	if issue.HasMilestone() {
		if number, ok := milestones[issue.MilestoneTitle()]; ok {
			n := number
			draft.Milestone = &n
		}
	}
	return draft
}

// LabelUnion returns every non-empty label in first-seen order.
func LabelUnion(issues []models.GeneratedIssue) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, issue := range issues {
		for _, l := range issue.Labels {
			if l == "" {
				continue
			}
			if _, dup := seen[l]; dup {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}

// MilestoneTitles returns every distinct milestone title in first-seen order.
func MilestoneTitles(issues []models.GeneratedIssue) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, issue := range issues {
		if !issue.HasMilestone() || issue.MilestoneTitle() == "" {
			continue
		}
		title := issue.MilestoneTitle()
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		out = append(out, title)
	}
	return out
}
