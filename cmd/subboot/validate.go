package subboot

import (
	"github.com/arthur-debert/subboot/pkg/config"
	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/arthur-debert/subboot/pkg/ui"
	"github.com/spf13/cobra"
)

func (a *App) newValidateCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: MsgValidateShort,
		Long:  MsgValidateLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.resolve(*global)
			if err != nil {
				return err
			}

			path := e.settings.ManifestPath(e.root)
			deps, err := config.LoadManifest(e.fs.Afero(), path)
			if err != nil {
				return err
			}

			findings := config.Validate(deps)
			a.logger.Debug().Str("manifest", path).Int("findings", len(findings)).Msg("Validated manifest")
			if err := ui.NewRenderer(e.format, a.Out).RenderFindings(findings); err != nil {
				return err
			}

			if config.HasErrors(findings) {
				n := 0
				for _, f := range findings {
					if f.Severity == config.SeverityError {
						n++
					}
				}
				return errors.Newf(errors.ErrConfigValid, MsgErrInvalid, n)
			}
			return nil
		},
	}
}
