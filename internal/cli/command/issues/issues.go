package issues

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/DorianABDS/spec-to-issues/internal/ai"
	"github.com/DorianABDS/spec-to-issues/internal/cli/completion_helper"
	"github.com/DorianABDS/spec-to-issues/internal/config"
	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/i18n"
	"github.com/DorianABDS/spec-to-issues/internal/models"
	"github.com/DorianABDS/spec-to-issues/internal/publisher"
	"github.com/DorianABDS/spec-to-issues/internal/ui"
	"github.com/DorianABDS/spec-to-issues/internal/vcs"
)

// DefaultOutput is where generate writes the issues when --out is not set.
const DefaultOutput = "issues.json"

// IssueGenerator is the part of ai.IssueGenerator the commands use.
type IssueGenerator interface {
	Generate(ctx context.Context, req ai.GenerationRequest) (*ai.GenerationResult, error)
}

type GeneratorProvider func(ctx context.Context) (IssueGenerator, error)

// GenerateCommandFactory creates the 'generate' command.
type GenerateCommandFactory struct {
	generatorProvider GeneratorProvider
	out               io.Writer
}

func NewGenerateCommandFactory(provider GeneratorProvider) *GenerateCommandFactory {
	return &GenerateCommandFactory{generatorProvider: provider, out: os.Stdout}
}

// WithOutput redirects the command's output.
func (f *GenerateCommandFactory) WithOutput(w io.Writer) *GenerateCommandFactory {
	f.out = w
	return f
}

func (f *GenerateCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "generate",
		Aliases:       []string{"g"},
		Usage:         t.GetMessage("generate_usage", 0, nil),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    t.GetMessage("flag_file", 0, nil),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "team",
				Aliases: []string{"t"},
				Usage:   t.GetMessage("flag_team", 0, nil),
			},
			&cli.StringFlag{
				Name:  "project-name",
				Usage: t.GetMessage("flag_project_name", 0, nil),
			},
			&cli.StringFlag{
				Name:  "project-type",
				Usage: t.GetMessage("flag_project_type", 0, nil),
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   t.GetMessage("flag_out", 0, nil),
				Value:   DefaultOutput,
			},
		},
		Action: f.createGenerateAction(t),
	}
}

func (f *GenerateCommandFactory) createGenerateAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		content, err := os.ReadFile(command.String("file"))
		if err != nil {
			return err
		}
		team, err := LoadTeamConfig(command.String("team"))
		if err != nil {
			return err
		}
		generator, err := f.generatorProvider(ctx)
		if err != nil {
			return err
		}

		var result *ai.GenerationResult
		err = ui.WithSpinner(f.out, t.GetMessage("generating_issues", 0, nil), func() error {
			var genErr error
			result, genErr = generator.Generate(ctx, ai.GenerationRequest{
				Content:     string(content),
				Team:        team,
				ProjectName: command.String("project-name"),
				ProjectType: command.String("project-type"),
			})
			return genErr
		})
		if err != nil {
			return err
		}

		ui.PrintIssues(f.out, result.Issues, t)
		ui.PrintSuccess(f.out, t.GetMessage("issues_generated", len(result.Issues), map[string]interface{}{
			"Count": len(result.Issues),
		}))
		ui.PrintTokenUsage(f.out, result.Usage, t)

		path := command.String("out")
		if err := WriteIssues(path, result.Issues); err != nil {
			return err
		}
		ui.PrintInfo(f.out, t.GetMessage("issues_written", 0, map[string]interface{}{"Path": path}))
		return nil
	}
}

// PreviewCommandFactory creates the 'preview' command.
type PreviewCommandFactory struct {
	out io.Writer
}

func NewPreviewCommandFactory() *PreviewCommandFactory {
	return &PreviewCommandFactory{out: os.Stdout}
}

func (f *PreviewCommandFactory) WithOutput(w io.Writer) *PreviewCommandFactory {
	f.out = w
	return f
}

func (f *PreviewCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "preview",
		Usage:         t.GetMessage("preview_usage", 0, nil),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "issues",
				Aliases: []string{"i"},
				Usage:   t.GetMessage("flag_issues", 0, nil),
				Value:   DefaultOutput,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			issues, err := ReadIssues(command.String("issues"))
			if err != nil {
				return err
			}
			ui.PrintPreview(f.out, publisher.DryRun(issues), t)
			return nil
		},
	}
}

// PublishCommandFactory creates the 'publish' command.
type PublishCommandFactory struct {
	clients vcs.ClientFactory
	options func() publisher.Options
	out     io.Writer
}

// NewPublishCommandFactory takes the options lazily so they reflect a
// configuration reloaded by the root command.
func NewPublishCommandFactory(clients vcs.ClientFactory, options func() publisher.Options) *PublishCommandFactory {
	return &PublishCommandFactory{clients: clients, options: options, out: os.Stdout}
}

func (f *PublishCommandFactory) WithOutput(w io.Writer) *PublishCommandFactory {
	f.out = w
	return f
}

func (f *PublishCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "publish",
		Aliases:       []string{"p"},
		Usage:         t.GetMessage("publish_usage", 0, nil),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "repo",
				Aliases:  []string{"r"},
				Usage:    t.GetMessage("flag_repo", 0, nil),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "issues",
				Aliases: []string{"i"},
				Usage:   t.GetMessage("flag_issues", 0, nil),
				Value:   DefaultOutput,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: t.GetMessage("flag_dry_run", 0, nil),
			},
		},
		Action: f.createPublishAction(t, cfg),
	}
}

func (f *PublishCommandFactory) createPublishAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		slug := command.String("repo")
		owner, repo, ok := ParseRepo(slug)
		if !ok {
			return domainErrors.ErrRepositoryRequired.WithContext("detail",
				t.GetMessage("invalid_repo", 0, map[string]interface{}{"Repo": slug}))
		}
		issues, err := ReadIssues(command.String("issues"))
		if err != nil {
			return err
		}

		opts := f.options()
		maxBatch := opts.MaxBatch
		if maxBatch <= 0 {
			maxBatch = publisher.DefaultMaxBatch
		}
		if err := publisher.ValidateBatch(issues, maxBatch); err != nil {
			return err
		}

		if command.Bool("dry-run") {
			ui.PrintPreview(f.out, publisher.DryRun(issues), t)
			return nil
		}
		if cfg.GitHub.Token == "" {
			return domainErrors.ErrTokenMissing
		}

		client := f.clients(owner, repo, cfg.GitHub.Token)
		var result *models.CreationResult
		err = ui.WithSpinner(f.out, t.GetMessage("publishing_issues", 0, map[string]interface{}{"Repo": owner + "/" + repo}), func() error {
			var pubErr error
			result, pubErr = publisher.New(client, opts).Publish(ctx, issues)
			return pubErr
		})
		if err != nil {
			return err
		}
		ui.PrintCreationResult(f.out, result, t)
		return nil
	}
}
