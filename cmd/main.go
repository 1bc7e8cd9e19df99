package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/DorianABDS/spec-to-issues/internal/ai/anthropic"
	"github.com/DorianABDS/spec-to-issues/internal/ai/gemini"
	"github.com/DorianABDS/spec-to-issues/internal/api"
	"github.com/DorianABDS/spec-to-issues/internal/cli/command/completion"
	configcmd "github.com/DorianABDS/spec-to-issues/internal/cli/command/config"
	"github.com/DorianABDS/spec-to-issues/internal/cli/command/issues"
	mcpcmd "github.com/DorianABDS/spec-to-issues/internal/cli/command/mcp"
	"github.com/DorianABDS/spec-to-issues/internal/cli/command/serve"
	"github.com/DorianABDS/spec-to-issues/internal/cli/registry"
	cfg "github.com/DorianABDS/spec-to-issues/internal/config"
	"github.com/DorianABDS/spec-to-issues/internal/di"
	"github.com/DorianABDS/spec-to-issues/internal/i18n"
	"github.com/DorianABDS/spec-to-issues/internal/logger"
	"github.com/DorianABDS/spec-to-issues/internal/mcp"
	"github.com/DorianABDS/spec-to-issues/internal/publisher"
	"github.com/DorianABDS/spec-to-issues/internal/ui"
	"github.com/DorianABDS/spec-to-issues/internal/vcs"
	"github.com/DorianABDS/spec-to-issues/internal/version"
)

func main() {
	app, translations, err := initializeApp()
	if err != nil {
		log.Fatalf("error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	cfgApp, err := cfg.Load(os.Getenv(cfg.EnvPrefix + "_CONFIG"))
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading translations: %w", err)
	}

	container := di.NewContainer(cfgApp, translations)

	if err := container.RegisterAIProvider(string(cfg.AIAnthropic), anthropic.Factory); err != nil {
		return nil, nil, err
	}
	if err := container.RegisterAIProvider(string(cfg.AIGemini), gemini.Factory); err != nil {
		return nil, nil, err
	}

	generatorProvider := func(ctx context.Context) (issues.IssueGenerator, error) {
		return container.GetIssueGenerator(ctx)
	}
	apiDeps := func(ctx context.Context) (api.Deps, error) {
		return container.APIDeps(ctx)
	}
	mcpDeps := func(ctx context.Context) (mcp.Deps, error) {
		return container.MCPDeps(ctx, version.FullVersion())
	}
	publishOptions := func() publisher.Options {
		return container.PublishOptions()
	}
	clients := func(owner, repo, token string) vcs.Client {
		return container.ClientFactory()(owner, repo, token)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)
	factories := []struct {
		name    string
		factory registry.CommandFactory
	}{
		{"serve", serve.NewServeCommandFactory(apiDeps)},
		{"generate", issues.NewGenerateCommandFactory(generatorProvider)},
		{"preview", issues.NewPreviewCommandFactory()},
		{"publish", issues.NewPublishCommandFactory(clients, publishOptions)},
		{"mcp", mcpcmd.NewMCPCommandFactory(mcpDeps)},
		{"config", configcmd.NewConfigCommandFactory()},
		{"completion", completion.NewCompletionCommandFactory()},
	}
	for _, f := range factories {
		if err := registerCommand.Register(f.name, f.factory); err != nil {
			return nil, nil, fmt.Errorf("error registering command '%s': %w", f.name, err)
		}
	}

	return &cli.Command{
		Name:                  "spec-to-issues",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.FullVersion(),
		Commands:              registerCommand.CreateCommands(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("flag_debug", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("flag_verbose", 0, nil),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: translations.GetMessage("flag_config", 0, nil),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   translations.GetMessage("flag_log_format", 0, nil),
				Value:   string(logger.FormatPretty),
				Sources: cli.EnvVars(cfg.EnvPrefix + "_LOG_FORMAT"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(logger.Options{
				Debug:   cmd.Bool("debug"),
				Verbose: cmd.Bool("verbose"),
				Format:  logger.Format(cmd.String("log-format")),
			})

			// Commands hold this pointer, so an explicit file replaces the values in place.
			if path := cmd.String("config"); path != "" {
				reloaded, err := cfg.Load(path)
				if err != nil {
					return ctx, err
				}
				*cfgApp = *reloaded
				if err := translations.SetLanguage(cfgApp.Language); err != nil {
					return ctx, err
				}
			}
			logger.Debug(ctx, "configuration loaded", "file", cfgApp.PathFile, "provider", string(cfgApp.AI.Provider))
			return ctx, nil
		},
	}, translations, nil
}
