package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/models"
)

func newTestClient(issues *MockIssuesService, repos *MockRepoService, users *MockUserService) *GitHubClient {
	return NewGitHubClientWithServices(issues, repos, users, "test-owner", "test-repo")
}

func statusResponse(code int) *github.Response {
	return &github.Response{Response: &http.Response{StatusCode: code}}
}

func TestGitHubClient_CheckRepository(t *testing.T) {
	t.Run("should succeed when repository is reachable", func(t *testing.T) {
		repos := &MockRepoService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUserService{})

		repos.On("Get", mock.Anything, "test-owner", "test-repo").
			Return(&github.Repository{Name: github.Ptr("test-repo")}, statusResponse(200), nil).Once()

		assert.NoError(t, client.CheckRepository(context.Background()))
		repos.AssertExpectations(t)
	})

	t.Run("should map 401 to invalid token", func(t *testing.T) {
		repos := &MockRepoService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUserService{})

		repos.On("Get", mock.Anything, "test-owner", "test-repo").
			Return((*github.Repository)(nil), statusResponse(http.StatusUnauthorized), errors.New("401 Bad credentials")).Once()

		err := client.CheckRepository(context.Background())
		assert.True(t, errors.Is(err, domainErrors.ErrGitHubTokenInvalid))
	})

	t.Run("should map 404 to repository not found", func(t *testing.T) {
		repos := &MockRepoService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUserService{})

		repos.On("Get", mock.Anything, "test-owner", "test-repo").
			Return((*github.Repository)(nil), statusResponse(http.StatusNotFound), errors.New("404 Not Found")).Once()

		err := client.CheckRepository(context.Background())
		require.True(t, errors.Is(err, domainErrors.ErrRepositoryNotFound))

		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "test-owner/test-repo", appErr.Context["repo"])
	})

	t.Run("should keep network errors as is", func(t *testing.T) {
		repos := &MockRepoService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUserService{})

		repos.On("Get", mock.Anything, "test-owner", "test-repo").
			Return((*github.Repository)(nil), nil, errors.New("dial tcp: timeout")).Once()

		err := client.CheckRepository(context.Background())
		assert.ErrorContains(t, err, "dial tcp: timeout")
		assert.Equal(t, domainErrors.TypeInternal, domainErrors.TypeOf(err))
	})
}

func TestGitHubClient_CreateLabel(t *testing.T) {
	issues := &MockIssuesService{}
	client := newTestClient(issues, &MockRepoService{}, &MockUserService{})

	issues.On("CreateLabel", mock.Anything, "test-owner", "test-repo", mock.MatchedBy(func(l *github.Label) bool {
		return l.GetName() == "bug" && l.GetColor() == "d73a4a" && l.Description == nil
	})).Return(&github.Label{}, statusResponse(201), nil).Once()

	issues.On("CreateLabel", mock.Anything, "test-owner", "test-repo", mock.MatchedBy(func(l *github.Label) bool {
		return l.GetName() == "feature"
	})).Return((*github.Label)(nil), statusResponse(422), errors.New("422 Validation Failed [already_exists]")).Once()

	assert.NoError(t, client.CreateLabel(context.Background(), "bug", "d73a4a", ""))
	assert.ErrorContains(t, client.CreateLabel(context.Background(), "feature", "0075ca", ""), "already_exists")
	issues.AssertExpectations(t)
}

func TestGitHubClient_FindMilestone(t *testing.T) {
	t.Run("should search every state and page", func(t *testing.T) {
		issues := &MockIssuesService{}
		client := newTestClient(issues, &MockRepoService{}, &MockUserService{})

		page1 := &github.Response{Response: &http.Response{StatusCode: 200}, NextPage: 2}
		issues.On("ListMilestones", mock.Anything, "test-owner", "test-repo", mock.MatchedBy(func(o *github.MilestoneListOptions) bool {
			return o.State == "all" && o.Page == 0
		})).Return([]*github.Milestone{{Title: github.Ptr("Alpha"), Number: github.Ptr(1)}}, page1, nil).Once()
		issues.On("ListMilestones", mock.Anything, "test-owner", "test-repo", mock.MatchedBy(func(o *github.MilestoneListOptions) bool {
			return o.Page == 2
		})).Return([]*github.Milestone{
			{Title: github.Ptr("mvp"), Number: github.Ptr(2)},
			{Title: github.Ptr("MVP"), Number: github.Ptr(7), State: github.Ptr("closed")},
		}, statusResponse(200), nil).Once()

		number, found, err := client.FindMilestone(context.Background(), "MVP")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 7, number)
		issues.AssertNumberOfCalls(t, "ListMilestones", 2)
	})

	t.Run("should report not found", func(t *testing.T) {
		issues := &MockIssuesService{}
		client := newTestClient(issues, &MockRepoService{}, &MockUserService{})

		issues.On("ListMilestones", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.Milestone{}, statusResponse(200), nil).Once()

		_, found, err := client.FindMilestone(context.Background(), "MVP")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("should return list errors", func(t *testing.T) {
		issues := &MockIssuesService{}
		client := newTestClient(issues, &MockRepoService{}, &MockUserService{})

		issues.On("ListMilestones", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.Milestone(nil), statusResponse(500), errors.New("500")).Once()

		_, _, err := client.FindMilestone(context.Background(), "MVP")
		assert.Error(t, err)
	})
}

func TestGitHubClient_CreateMilestone(t *testing.T) {
	issues := &MockIssuesService{}
	client := newTestClient(issues, &MockRepoService{}, &MockUserService{})

	issues.On("CreateMilestone", mock.Anything, "test-owner", "test-repo", mock.MatchedBy(func(m *github.Milestone) bool {
		return m.GetTitle() == "MVP"
	})).Return(&github.Milestone{Number: github.Ptr(3)}, statusResponse(201), nil).Once()

	number, err := client.CreateMilestone(context.Background(), "MVP")
	require.NoError(t, err)
	assert.Equal(t, 3, number)
}

func TestGitHubClient_CreateIssue(t *testing.T) {
	t.Run("should send the draft", func(t *testing.T) {
		issues := &MockIssuesService{}
		client := newTestClient(issues, &MockRepoService{}, &MockUserService{})
		milestone := 4

		issues.On("Create", mock.Anything, "test-owner", "test-repo", mock.MatchedBy(func(r *github.IssueRequest) bool {
			return r.GetTitle() == "Login" &&
				r.GetBody() == "body" &&
				r.Labels != nil && assert.ObjectsAreEqual([]string{"ui-design"}, *r.Labels) &&
				r.Assignees != nil && assert.ObjectsAreEqual([]string{"ana"}, *r.Assignees) &&
				r.GetMilestone() == 4
		})).Return(&github.Issue{
			Number:  github.Ptr(12),
			Title:   github.Ptr("Login"),
			HTMLURL: github.Ptr("https://github.com/test-owner/test-repo/issues/12"),
		}, statusResponse(201), nil).Once()

		published, err := client.CreateIssue(context.Background(), models.IssueDraft{
			Title:     "Login",
			Body:      "body",
			Labels:    []string{"ui-design"},
			Assignees: []string{"ana"},
			Milestone: &milestone,
		})

		require.NoError(t, err)
		assert.Equal(t, 12, published.Number)
		assert.Equal(t, "https://github.com/test-owner/test-repo/issues/12", published.URL)
		issues.AssertExpectations(t)
	})

	t.Run("should omit milestone and send empty lists", func(t *testing.T) {
		issues := &MockIssuesService{}
		client := newTestClient(issues, &MockRepoService{}, &MockUserService{})

		issues.On("Create", mock.Anything, "test-owner", "test-repo", mock.MatchedBy(func(r *github.IssueRequest) bool {
			return r.Milestone == nil && r.Labels != nil && len(*r.Labels) == 0 && r.Assignees != nil
		})).Return(&github.Issue{Number: github.Ptr(1)}, statusResponse(201), nil).Once()

		_, err := client.CreateIssue(context.Background(), models.IssueDraft{Title: "x"})
		require.NoError(t, err)
	})

	t.Run("should surface validation failures", func(t *testing.T) {
		issues := &MockIssuesService{}
		client := newTestClient(issues, &MockRepoService{}, &MockUserService{})

		issues.On("Create", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return((*github.Issue)(nil), statusResponse(422), errors.New("422 Validation Failed [{Resource:Issue Field:assignees Code:invalid}]")).Once()

		_, err := client.CreateIssue(context.Background(), models.IssueDraft{Title: "x", Assignees: []string{"ghost"}})
		assert.ErrorContains(t, err, "Validation Failed")
	})
}

func TestGitHubClient_ListRepositories(t *testing.T) {
	desc := "A game"
	repoList := []*github.Repository{{
		ID:          github.Ptr(int64(42)),
		Name:        github.Ptr("game"),
		FullName:    github.Ptr("acme/game"),
		Private:     github.Ptr(true),
		Description: &desc,
		Owner:       &github.User{Login: github.Ptr("acme")},
	}}

	t.Run("authenticated user", func(t *testing.T) {
		repos := &MockRepoService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUserService{})

		repos.On("ListByAuthenticatedUser", mock.Anything, mock.MatchedBy(func(o *github.RepositoryListByAuthenticatedUserOptions) bool {
			return o.Sort == "updated" && o.PerPage == 100
		})).Return(repoList, statusResponse(200), nil).Once()

		out, err := client.ListRepositories(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, models.Repository{ID: 42, Name: "game", FullName: "acme/game", Private: true, Description: &desc, Owner: "acme"}, out[0])
	})

	t.Run("organization", func(t *testing.T) {
		repos := &MockRepoService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUserService{})

		repos.On("ListByOrg", mock.Anything, "acme", mock.Anything).Return(repoList, statusResponse(200), nil).Once()

		out, err := client.ListRepositories(context.Background(), "acme")
		require.NoError(t, err)
		assert.Len(t, out, 1)
		repos.AssertNotCalled(t, "ListByAuthenticatedUser", mock.Anything, mock.Anything)
	})

	t.Run("bad credential", func(t *testing.T) {
		repos := &MockRepoService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUserService{})

		repos.On("ListByAuthenticatedUser", mock.Anything, mock.Anything).
			Return([]*github.Repository(nil), statusResponse(401), errors.New("401")).Once()

		_, err := client.ListRepositories(context.Background(), "")
		assert.True(t, errors.Is(err, domainErrors.ErrGitHubTokenInvalid))
	})
}

func TestGitHubClient_GetAuthenticatedUser(t *testing.T) {
	users := &MockUserService{}
	client := newTestClient(&MockIssuesService{}, &MockRepoService{}, users)

	users.On("Get", mock.Anything, "").Return(&github.User{Login: github.Ptr("ana")}, statusResponse(200), nil).Once()

	login, err := client.GetAuthenticatedUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ana", login)
}

func TestNewGitHubClient_BaseURL(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"id":1,"name":"game","full_name":"acme/game"}`)
	}))
	defer srv.Close()

	client := NewFactory(WithBaseURL(srv.URL))("acme", "game", "ghp_token")

	require.NoError(t, client.CheckRepository(context.Background()))
	assert.Equal(t, "Bearer ghp_token", gotAuth)
	assert.Equal(t, "/repos/acme/game", gotPath)
}
