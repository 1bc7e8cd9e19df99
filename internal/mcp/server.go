package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/DorianABDS/spec-to-issues/internal/ai"
	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/logger"
	"github.com/DorianABDS/spec-to-issues/internal/models"
	"github.com/DorianABDS/spec-to-issues/internal/publisher"
	"github.com/DorianABDS/spec-to-issues/internal/vcs"
)

// Generator is the part of ai.IssueGenerator the tools use.
type Generator interface {
	Generate(ctx context.Context, req ai.GenerationRequest) (*ai.GenerationResult, error)
}

// Deps wires the MCP server. GitHubToken is the operator's token from the
// configuration; MCP clients never send credentials.
type Deps struct {
	Generator   Generator
	Clients     vcs.ClientFactory
	GitHubToken string
	Publish     publisher.Options
	Version     string
}

// Server exposes the generate / preview / publish pipeline as MCP tools.
type Server struct {
	generator Generator
	clients   vcs.ClientFactory
	token     string
	publish   publisher.Options
	version   string
}

func NewServer(d Deps) *Server {
	version := d.Version
	if version == "" {
		version = "dev"
	}
	return &Server{
		generator: d.Generator,
		clients:   d.Clients,
		token:     d.GitHubToken,
		publish:   d.Publish,
		version:   version,
	}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("spec-to-issues", s.version, server.WithToolCapabilities(true))

	srv.AddTool(s.generateIssuesTool())
	srv.AddTool(s.previewIssuesTool())
	srv.AddTool(s.publishIssuesTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdioServer := server.NewStdioServer(s.MCPServer())
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// generate_issues
func (s *Server) generateIssuesTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("generate_issues",
		mcp.WithDescription("Turn a project document into a list of GitHub issues. Returns JSON {issues, total, model_used}; nothing is created on GitHub."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Plain-text document (game design document, spec, notes)")),
		mcp.WithString("team_config", mcp.Required(), mcp.Description(`Team as JSON: {"members":[{"name","github_handle","roles":[...],"active"}],"assignment_rules":{...}}`)),
		mcp.WithString("project_name", mcp.Description("Project name shown to the model")),
		mcp.WithString("project_type", mcp.Description("Project type, e.g. Roblox Game")),
	)
	return tool, s.handleGenerateIssues
}

func (s *Server) handleGenerateIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content := request.GetString("content", "")
	if content == "" {
		return toolError(domainErrors.ErrContentRequired), nil
	}
	var team models.TeamConfig
	if err := json.Unmarshal([]byte(request.GetString("team_config", "")), &team); err != nil {
		return toolError(domainErrors.ErrTeamConfigRequired.WithError(err)), nil
	}
	if s.generator == nil {
		return toolError(domainErrors.ErrAPIKeyMissing), nil
	}

	result, err := s.generator.Generate(ctx, ai.GenerationRequest{
		Content:     content,
		Team:        team,
		ProjectName: request.GetString("project_name", ""),
		ProjectType: request.GetString("project_type", ""),
	})
	if err != nil {
		logger.Error(ctx, "generate_issues failed", err)
		return toolError(err), nil
	}

	return jsonResult(map[string]any{
		"issues":     result.Issues,
		"total":      len(result.Issues),
		"model_used": result.ModelUsed,
	})
}

// preview_issues
func (s *Server) previewIssuesTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("preview_issues",
		mcp.WithDescription("Dry run: show title, labels, assignees, milestone and priority of each issue without touching GitHub."),
		mcp.WithString("issues", mcp.Required(), mcp.Description("JSON array of issues as returned by generate_issues")),
	)
	return tool, s.handlePreviewIssues
}

func (s *Server) handlePreviewIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issues, err := parseIssues(request.GetString("issues", ""))
	if err != nil {
		return toolError(domainErrors.ErrIssuesRequired.WithError(err)), nil
	}
	return jsonResult(publisher.DryRun(issues))
}

// publish_issues
func (s *Server) publishIssuesTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("publish_issues",
		mcp.WithDescription("Create the issues on owner/repo: labels, then milestones, then issues in order. Returns JSON {created, failed, total_created}."),
		mcp.WithString("owner", mcp.Required(), mcp.Description("Repository owner (user or organization)")),
		mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name")),
		mcp.WithString("issues", mcp.Required(), mcp.Description("JSON array of issues, at most 50")),
	)
	return tool, s.handlePublishIssues
}

func (s *Server) handlePublishIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner := request.GetString("owner", "")
	repo := request.GetString("repo", "")
	if owner == "" || repo == "" {
		return toolError(domainErrors.ErrRepositoryRequired), nil
	}
	issues, err := parseIssues(request.GetString("issues", ""))
	if err != nil {
		return toolError(domainErrors.ErrNoIssues.WithError(err)), nil
	}
	if s.token == "" {
		return toolError(domainErrors.ErrTokenMissing), nil
	}

	ctx = logger.With(ctx, "owner", owner, "repo", repo)
	client := s.clients(owner, repo, s.token)
	result, err := publisher.New(client, s.publish).Publish(ctx, issues)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(result)
}

func parseIssues(raw string) ([]models.GeneratedIssue, error) {
	if raw == "" {
		return nil, errors.New("issues is empty")
	}
	var issues []models.GeneratedIssue
	if err := json.Unmarshal([]byte(raw), &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func toolError(err error) *mcp.CallToolResult {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if detail, ok := appErr.Context["detail"].(string); ok && detail != "" {
			msg += ": " + detail
		}
		if appErr.Suggestion != "" {
			msg += " (" + appErr.Suggestion + ")"
		}
		return mcp.NewToolResultError(msg)
	}
	return mcp.NewToolResultError(err.Error())
}
