package config

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/DorianABDS/spec-to-issues/internal/config"
	"github.com/DorianABDS/spec-to-issues/internal/i18n"
)

// ConfigCommandFactory creates the 'config' command and its subcommands.
type ConfigCommandFactory struct {
	out io.Writer
}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{out: os.Stdout}
}

func (c *ConfigCommandFactory) WithOutput(w io.Writer) *ConfigCommandFactory {
	c.out = w
	return c
}

func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   t.GetMessage("config_usage", 0, nil),
		Commands: []*cli.Command{
			c.newShowCommand(t, cfg),
			c.newDoctorCommand(t, cfg),
		},
	}
}
