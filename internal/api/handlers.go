package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/DorianABDS/spec-to-issues/internal/ai"
	"github.com/DorianABDS/spec-to-issues/internal/auth"
	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/logger"
	"github.com/DorianABDS/spec-to-issues/internal/models"
	"github.com/DorianABDS/spec-to-issues/internal/publisher"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type generateRequest struct {
	Content     any             `json:"content"`
	TeamConfig  json.RawMessage `json:"team_config"`
	ProjectName string          `json:"project_name"`
	ProjectType string          `json:"project_type"`
}

type generateResponse struct {
	Issues    []models.GeneratedIssue `json:"issues"`
	Total     int                     `json:"total"`
	ModelUsed string                  `json:"model_used"`
}

type createIssuesRequest struct {
	Owner  string          `json:"owner"`
	Repo   string          `json:"repo"`
	Issues json.RawMessage `json:"issues"`
}

type dryRunRequest struct {
	Issues json.RawMessage `json:"issues"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}

// --- Generation ---

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	key := rateLimitKey(r)
	if !s.limiter.Allow(key) {
		retry := s.limiter.RetryAfter(key)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(retry.Seconds()))))
		logger.Warn(r.Context(), "generation rate limited", "key", key)
		writeError(w, domainErrors.ErrRateLimited)
		return
	}

	var body generateRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	content, ok := body.Content.(string)
	if !ok || content == "" {
		writeError(w, domainErrors.ErrContentRequired)
		return
	}
	team, err := decodeTeamConfig(body.TeamConfig)
	if err != nil {
		writeError(w, err)
		return
	}

	if s.generator == nil {
		writeError(w, domainErrors.ErrAPIKeyMissing)
		return
	}

	result, err := s.generator.Generate(r.Context(), ai.GenerationRequest{
		Content:     content,
		Team:        team,
		ProjectName: body.ProjectName,
		ProjectType: body.ProjectType,
	})
	if err != nil {
		logger.Error(r.Context(), "generation failed", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Issues:    result.Issues,
		Total:     len(result.Issues),
		ModelUsed: result.ModelUsed,
	})
}

// decodeTeamConfig requires an object whose members field is an array.
func decodeTeamConfig(raw json.RawMessage) (models.TeamConfig, error) {
	var team models.TeamConfig
	var probe struct {
		Members json.RawMessage `json:"members"`
	}
	if !isJSONObject(raw) || json.Unmarshal(raw, &probe) != nil || !isJSONArray(probe.Members) {
		return team, domainErrors.ErrTeamConfigRequired
	}
	if err := json.Unmarshal(raw, &team); err != nil {
		return team, domainErrors.ErrTeamConfigRequired.WithError(err)
	}
	return team, nil
}

// --- GitHub ---

func (s *Server) listRepos(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CallerFromContext(r.Context())
	org := r.URL.Query().Get("org")

	repos, err := s.clients("", "", caller.GitHubToken).ListRepositories(r.Context(), org)
	if err != nil {
		logger.Error(r.Context(), "listing repositories failed", err, "org", org)
		writeError(w, err)
		return
	}
	if repos == nil {
		repos = []models.Repository{}
	}
	writeJSON(w, http.StatusOK, repos)
}

func (s *Server) createIssues(w http.ResponseWriter, r *http.Request) {
	var body createIssuesRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Owner == "" || body.Repo == "" {
		writeError(w, domainErrors.ErrRepositoryRequired)
		return
	}
	if !isJSONArray(body.Issues) {
		writeError(w, domainErrors.ErrNoIssues)
		return
	}
	var issues []models.GeneratedIssue
	if err := json.Unmarshal(body.Issues, &issues); err != nil {
		writeError(w, domainErrors.ErrInvalidRequest.WithError(err))
		return
	}

	maxBatch := s.publish.MaxBatch
	if maxBatch <= 0 {
		maxBatch = publisher.DefaultMaxBatch
	}
	if err := publisher.ValidateBatch(issues, maxBatch); err != nil {
		writeError(w, err)
		return
	}

	ctx := logger.With(r.Context(), "owner", body.Owner, "repo", body.Repo)
	caller, _ := auth.CallerFromContext(ctx)
	client := s.clients(body.Owner, body.Repo, caller.GitHubToken)

	result, err := publisher.New(client, s.publish).Publish(ctx, issues)
	if err != nil {
		logger.Error(ctx, "publish failed", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) dryRun(w http.ResponseWriter, r *http.Request) {
	var body dryRunRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if !isJSONArray(body.Issues) {
		writeError(w, domainErrors.ErrIssuesRequired)
		return
	}
	var issues []models.GeneratedIssue
	if err := json.Unmarshal(body.Issues, &issues); err != nil {
		writeError(w, domainErrors.ErrInvalidRequest.WithError(err))
		return
	}
	writeJSON(w, http.StatusOK, publisher.DryRun(issues))
}

// --- helpers ---

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return domainErrors.ErrInvalidRequest.WithError(err)
	}
	return nil
}

func isJSONArray(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '['
}

func isJSONObject(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '{'
}
