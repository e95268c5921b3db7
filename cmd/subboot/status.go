package subboot

import (
	"path/filepath"

	"github.com/arthur-debert/subboot/pkg/bootstrap"
	"github.com/arthur-debert/subboot/pkg/lockfile"
	"github.com/arthur-debert/subboot/pkg/ui"
	"github.com/spf13/cobra"
)

func (a *App) newStatusCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.resolve(*global)
			if err != nil {
				return err
			}

			driver := a.gitDriver(e, true)
			manager := a.linkManager(e, true)
			runner := bootstrap.NewRunner(bootstrap.Options{
				ProjectRoot: e.root,
				Settings:    e.settings,
				FS:          e.fs,
				Git:         driver,
				Links:       manager,
				Logger:      a.logger,
			})

			deps, err := runner.Load(global.only)
			if err != nil {
				return err
			}

			a.warnStaleLock(e)

			// Submodule state is best effort: the project may not be a git
			// work tree yet.
			states, err := driver.Status(cmd.Context())
			if err != nil {
				a.logger.Debug().Err(err).Msg("Submodule status unavailable")
			}

			var rows []ui.StatusRow
			for _, dep := range deps {
				sub := states[driver.SubmodulePath(dep.Name)]
				for _, st := range manager.Inspect(dep) {
					rows = append(rows, ui.StatusRow{Status: st, Submodule: sub})
				}
			}
			if len(rows) == 0 {
				return ui.NewRenderer(e.format, a.Out).RenderMessage(MsgNoDependencies)
			}
			return ui.NewRenderer(e.format, a.Out).RenderStatus(rows)
		},
	}
}

func (a *App) warnStaleLock(e *env) {
	path := e.settings.Lockfile
	if path == "" {
		path = lockfile.DefaultFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.root, path)
	}

	lock, err := lockfile.Read(e.fs, path)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Cannot read lock file")
		return
	}
	stale, err := lock.Stale(e.fs, e.settings.ManifestPath(e.root))
	if err != nil {
		a.logger.Debug().Err(err).Msg("Cannot compare manifest with lock file")
		return
	}
	if stale {
		a.logger.Warn().Str("lockfile", path).Msg(MsgStaleLock)
	}
}
