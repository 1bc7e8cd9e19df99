package vcs

import (
	"context"

	"github.com/DorianABDS/spec-to-issues/internal/models"
)

// IssueTracker is the remote side of a publish run, bound to one repository.
type IssueTracker interface {
	// CheckRepository verifies the repository exists and the credential can reach it.
	CheckRepository(ctx context.Context) error
	// CreateLabel creates a label; an existing label is reported as an error.
	CreateLabel(ctx context.Context, name, color, description string) error
	// FindMilestone looks for a milestone with exactly this title in any state.
	FindMilestone(ctx context.Context, title string) (number int, found bool, err error)
	// CreateMilestone creates an open milestone and returns its number.
	CreateMilestone(ctx context.Context, title string) (int, error)
	// CreateIssue creates one issue.
	CreateIssue(ctx context.Context, draft models.IssueDraft) (*models.PublishedIssue, error)
}

// RepositoryLister lists repositories visible to a credential.
type RepositoryLister interface {
	// ListRepositories lists the caller's repositories, or an organization's when org is set.
	ListRepositories(ctx context.Context, org string) ([]models.Repository, error)
	// GetAuthenticatedUser returns the login behind the credential.
	GetAuthenticatedUser(ctx context.Context) (string, error)
}

// Client is everything the HTTP and MCP surfaces need from a hosting provider.
type Client interface {
	IssueTracker
	RepositoryLister
}

// ClientFactory builds a Client bound to owner/repo for one credential.
// owner and repo may be empty when only RepositoryLister is used.
type ClientFactory func(owner, repo, token string) Client
