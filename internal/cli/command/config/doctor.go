package config

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/DorianABDS/spec-to-issues/internal/config"
	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/i18n"
	"github.com/DorianABDS/spec-to-issues/internal/ui"
)

var allSurfaces = []config.Surface{
	config.SurfaceServer,
	config.SurfaceGenerate,
	config.SurfacePublish,
	config.SurfaceMCP,
}

// newDoctorCommand reports, per entry point, the settings that are still missing.
// With surfaces given as arguments it fails when any of them is incomplete,
// so it can gate a deployment.
func (c *ConfigCommandFactory) newDoctorCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Aliases:   []string{"dr"},
		Usage:     t.GetMessage("config_doctor_usage", 0, nil),
		ArgsUsage: "[serve|generate|publish|mcp]...",
		Action: func(ctx context.Context, command *cli.Command) error {
			surfaces := allSurfaces
			strict := command.Args().Len() > 0
			if strict {
				surfaces = surfaces[:0:0]
				for _, arg := range command.Args().Slice() {
					surfaces = append(surfaces, config.Surface(arg))
				}
			}

			var missing []string
			for _, s := range surfaces {
				keys := cfg.Missing(s)
				if len(keys) == 0 {
					ui.PrintSuccess(c.out, t.GetMessage("config_ok", 0, map[string]interface{}{"Surface": s}))
					continue
				}
				for _, key := range keys {
					ui.PrintWarning(c.out, t.GetMessage("config_missing", 0, map[string]interface{}{
						"Surface": s,
						"Key":     key,
					}))
					missing = append(missing, key)
				}
			}

			if strict && len(missing) > 0 {
				return domainErrors.ErrConfigInvalid.WithContext("detail", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}
