package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) CreateLabel(ctx context.Context, owner, repo string, label *github.Label) (*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, label)
	return args.Get(0).(*github.Label), responseArg(args, 1), args.Error(2)
}

func (m *MockIssuesService) ListMilestones(ctx context.Context, owner, repo string, opts *github.MilestoneListOptions) ([]*github.Milestone, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	return args.Get(0).([]*github.Milestone), responseArg(args, 1), args.Error(2)
}

func (m *MockIssuesService) CreateMilestone(ctx context.Context, owner, repo string, milestone *github.Milestone) (*github.Milestone, *github.Response, error) {
	args := m.Called(ctx, owner, repo, milestone)
	return args.Get(0).(*github.Milestone), responseArg(args, 1), args.Error(2)
}

func (m *MockIssuesService) Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, issue)
	return args.Get(0).(*github.Issue), responseArg(args, 1), args.Error(2)
}

type MockRepoService struct {
	mock.Mock
}

func (m *MockRepoService) Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
	args := m.Called(ctx, owner, repo)
	return args.Get(0).(*github.Repository), responseArg(args, 1), args.Error(2)
}

func (m *MockRepoService) ListByAuthenticatedUser(ctx context.Context, opts *github.RepositoryListByAuthenticatedUserOptions) ([]*github.Repository, *github.Response, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).([]*github.Repository), responseArg(args, 1), args.Error(2)
}

func (m *MockRepoService) ListByOrg(ctx context.Context, org string, opts *github.RepositoryListByOrgOptions) ([]*github.Repository, *github.Response, error) {
	args := m.Called(ctx, org, opts)
	return args.Get(0).([]*github.Repository), responseArg(args, 1), args.Error(2)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Get(ctx context.Context, user string) (*github.User, *github.Response, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(*github.User), responseArg(args, 1), args.Error(2)
}

func responseArg(args mock.Arguments, i int) *github.Response {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*github.Response)
}
