package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/logger"
	"github.com/DorianABDS/spec-to-issues/internal/models"
	"github.com/DorianABDS/spec-to-issues/internal/vcs"
)

var _ vcs.Client = (*GitHubClient)(nil)

const perPage = 100

type IssuesService interface {
	CreateLabel(ctx context.Context, owner, repo string, label *github.Label) (*github.Label, *github.Response, error)
	ListMilestones(ctx context.Context, owner, repo string, opts *github.MilestoneListOptions) ([]*github.Milestone, *github.Response, error)
	CreateMilestone(ctx context.Context, owner, repo string, milestone *github.Milestone) (*github.Milestone, *github.Response, error)
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

type RepositoriesService interface {
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
	ListByAuthenticatedUser(ctx context.Context, opts *github.RepositoryListByAuthenticatedUserOptions) ([]*github.Repository, *github.Response, error)
	ListByOrg(ctx context.Context, org string, opts *github.RepositoryListByOrgOptions) ([]*github.Repository, *github.Response, error)
}

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

type GitHubClient struct {
	issuesService IssuesService
	repoService   RepositoriesService
	usersService  UsersService
	owner         string
	repo          string
}

// Option tweaks the underlying go-github client.
type Option func(*github.Client)

// WithBaseURL points the client at another API root (GitHub Enterprise, tests).
func WithBaseURL(raw string) Option {
	return func(c *github.Client) {
		if raw == "" {
			return
		}
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		if u, err := url.Parse(raw); err == nil {
			c.BaseURL = u
		}
	}
}

func NewGitHubClient(owner, repo, token string, opts ...Option) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	for _, opt := range opts {
		opt(client)
	}
	return &GitHubClient{
		issuesService: client.Issues,
		repoService:   client.Repositories,
		usersService:  client.Users,
		owner:         owner,
		repo:          repo,
	}
}

func NewGitHubClientWithServices(
	issuesService IssuesService,
	repoService RepositoriesService,
	usersService UsersService,
	owner string,
	repo string,
) *GitHubClient {
	return &GitHubClient{
		issuesService: issuesService,
		repoService:   repoService,
		usersService:  usersService,
		owner:         owner,
		repo:          repo,
	}
}

// NewFactory returns a vcs.ClientFactory producing clients with opts applied.
func NewFactory(opts ...Option) vcs.ClientFactory {
	return func(owner, repo, token string) vcs.Client {
		return NewGitHubClient(owner, repo, token, opts...)
	}
}

func (ghc *GitHubClient) fullName() string {
	return fmt.Sprintf("%s/%s", ghc.owner, ghc.repo)
}

func (ghc *GitHubClient) CheckRepository(ctx context.Context) error {
	_, resp, err := ghc.repoService.Get(ctx, ghc.owner, ghc.repo)
	if err != nil {
		return ghc.classifyError(resp, err, "get repository")
	}
	return nil
}

func (ghc *GitHubClient) CreateLabel(ctx context.Context, name, color, description string) error {
	label := &github.Label{
		Name:  github.Ptr(name),
		Color: github.Ptr(color),
	}
	if description != "" {
		label.Description = github.Ptr(description)
	}
	_, _, err := ghc.issuesService.CreateLabel(ctx, ghc.owner, ghc.repo, label)
	return err
}

func (ghc *GitHubClient) FindMilestone(ctx context.Context, title string) (int, bool, error) {
	opts := &github.MilestoneListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	for {
		milestones, resp, err := ghc.issuesService.ListMilestones(ctx, ghc.owner, ghc.repo, opts)
		if err != nil {
			return 0, false, ghc.classifyError(resp, err, "list milestones")
		}
		for _, m := range milestones {
			if m.GetTitle() == title {
				return m.GetNumber(), true, nil
			}
		}
		if resp == nil || resp.NextPage == 0 {
			return 0, false, nil
		}
		opts.Page = resp.NextPage
	}
}

func (ghc *GitHubClient) CreateMilestone(ctx context.Context, title string) (int, error) {
	m, resp, err := ghc.issuesService.CreateMilestone(ctx, ghc.owner, ghc.repo, &github.Milestone{
		Title: github.Ptr(title),
	})
	if err != nil {
		return 0, ghc.classifyError(resp, err, "create milestone")
	}
	return m.GetNumber(), nil
}

func (ghc *GitHubClient) CreateIssue(ctx context.Context, draft models.IssueDraft) (*models.PublishedIssue, error) {
	log := logger.FromContext(ctx)

	labels := draft.Labels
	if labels == nil {
		labels = []string{}
	}
	assignees := draft.Assignees
	if assignees == nil {
		assignees = []string{}
	}

	issueRequest := &github.IssueRequest{
		Title:     github.Ptr(draft.Title),
		Body:      github.Ptr(draft.Body),
		Labels:    &labels,
		Assignees: &assignees,
	}
	if draft.Milestone != nil {
		issueRequest.Milestone = github.Ptr(*draft.Milestone)
	}

	ghIssue, resp, err := ghc.issuesService.Create(ctx, ghc.owner, ghc.repo, issueRequest)
	if err != nil {
		log.Debug("github rejected issue",
			"error", err,
			"title", draft.Title)
		return nil, ghc.classifyError(resp, err, "create issue")
	}

	return &models.PublishedIssue{
		Number: ghIssue.GetNumber(),
		URL:    ghIssue.GetHTMLURL(),
		Title:  ghIssue.GetTitle(),
	}, nil
}

func (ghc *GitHubClient) ListRepositories(ctx context.Context, org string) ([]models.Repository, error) {
	var (
		repos []*github.Repository
		resp  *github.Response
		err   error
	)
	if org != "" {
		repos, resp, err = ghc.repoService.ListByOrg(ctx, org, &github.RepositoryListByOrgOptions{
			Type:        "all",
			Sort:        "updated",
			ListOptions: github.ListOptions{PerPage: perPage},
		})
	} else {
		repos, resp, err = ghc.repoService.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
			Type:        "all",
			Sort:        "updated",
			ListOptions: github.ListOptions{PerPage: perPage},
		})
	}
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, domainErrors.ErrGitHubTokenInvalid.WithError(err)
		}
		return nil, domainErrors.ErrListRepositories.WithError(err).WithContext("org", org)
	}

	out := make([]models.Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, models.Repository{
			ID:          r.GetID(),
			Name:        r.GetName(),
			FullName:    r.GetFullName(),
			Private:     r.GetPrivate(),
			Description: r.Description,
			Owner:       r.GetOwner().GetLogin(),
		})
	}
	return out, nil
}

func (ghc *GitHubClient) GetAuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := ghc.usersService.Get(ctx, "")
	if err != nil {
		return "", ghc.classifyError(resp, err, "get authenticated user")
	}
	return user.GetLogin(), nil
}

// classifyError maps credential and lookup failures onto domain errors and
// keeps GitHub's own message for everything else.
func (ghc *GitHubClient) classifyError(resp *github.Response, err error, operation string) error {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.
				WithError(err).
				WithContext("operation", operation)
		case http.StatusNotFound:
			return domainErrors.ErrRepositoryNotFound.
				WithError(err).
				WithContext("operation", operation).
				WithContext("repo", ghc.fullName())
		case http.StatusForbidden:
			var rateErr *github.RateLimitError
			if errors.As(err, &rateErr) {
				return domainErrors.ErrGitHubRateLimit.WithError(err)
			}
		}
	}
	return fmt.Errorf("error trying to %s on %s: %w", operation, ghc.fullName(), err)
}
