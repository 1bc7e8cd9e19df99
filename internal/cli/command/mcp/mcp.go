package mcp

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/DorianABDS/spec-to-issues/internal/config"
	"github.com/DorianABDS/spec-to-issues/internal/i18n"
	"github.com/DorianABDS/spec-to-issues/internal/logger"
	mcpserver "github.com/DorianABDS/spec-to-issues/internal/mcp"
	"github.com/DorianABDS/spec-to-issues/internal/ui"
)

// Stdio serves the given server over stdin/stdout until ctx is done.
type Stdio func(ctx context.Context, srv *mcpserver.Server) error

// DepsProvider assembles the MCP dependencies once the configuration is final.
type DepsProvider func(ctx context.Context) (mcpserver.Deps, error)

// MCPCommandFactory creates the 'mcp' command.
type MCPCommandFactory struct {
	deps  DepsProvider
	serve Stdio
	// stdout carries the protocol, so notices go to stderr.
	notice io.Writer
}

func NewMCPCommandFactory(deps DepsProvider) *MCPCommandFactory {
	return &MCPCommandFactory{
		deps:   deps,
		serve:  func(ctx context.Context, srv *mcpserver.Server) error { return srv.ServeStdio(ctx) },
		notice: os.Stderr,
	}
}

func (f *MCPCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: t.GetMessage("mcp_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			deps, err := f.deps(ctx)
			if err != nil {
				return err
			}
			if deps.Generator == nil {
				logger.Warn(ctx, "AI provider not configured, generate_issues will fail",
					"provider", string(cfg.AI.Provider))
			}
			if deps.GitHubToken == "" {
				logger.Warn(ctx, "github.token not set, publish_issues will fail")
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			ui.PrintInfo(f.notice, t.GetMessage("mcp_serving", 0, nil))
			return f.serve(ctx, mcpserver.NewServer(deps))
		},
	}
}
