package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/DorianABDS/spec-to-issues/internal/config"
	"github.com/DorianABDS/spec-to-issues/internal/i18n"
	"github.com/DorianABDS/spec-to-issues/internal/ui"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			path := cfg.PathFile
			if path == "" {
				path = t.GetMessage("config_none", 0, nil)
			}
			ui.PrintKeyValue(c.out, t.GetMessage("config_file", 0, nil), path)

			data, err := yaml.Marshal(masked(*cfg))
			if err != nil {
				return fmt.Errorf("error encoding config: %w", err)
			}
			_, err = fmt.Fprint(c.out, string(data))
			return err
		},
	}
}

// masked returns a copy of cfg with every secret reduced to its last four characters.
func masked(cfg config.Config) config.Config {
	cfg.Auth.JWTSecret = mask(cfg.Auth.JWTSecret)
	cfg.Anthropic.APIKey = mask(cfg.Anthropic.APIKey)
	cfg.Gemini.APIKey = mask(cfg.Gemini.APIKey)
	cfg.GitHub.Token = mask(cfg.GitHub.Token)
	return cfg
}

func mask(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 8:
		return strings.Repeat("*", 4)
	default:
		return strings.Repeat("*", 4) + secret[len(secret)-4:]
	}
}
