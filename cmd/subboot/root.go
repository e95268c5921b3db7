package subboot

import (
	"context"
	"io/fs"

	"github.com/arthur-debert/subboot/internal/version"
	"github.com/arthur-debert/subboot/pkg/bootstrap"
	"github.com/arthur-debert/subboot/pkg/cobrax/topics"
	"github.com/arthur-debert/subboot/pkg/config"
	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/arthur-debert/subboot/pkg/filesystem"
	"github.com/arthur-debert/subboot/pkg/git"
	"github.com/arthur-debert/subboot/pkg/hooks"
	"github.com/arthur-debert/subboot/pkg/links"
	"github.com/arthur-debert/subboot/pkg/logging"
	"github.com/arthur-debert/subboot/pkg/types"
	"github.com/arthur-debert/subboot/pkg/ui"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every command
type globalFlags struct {
	verbosity int
	only      string
	config    string
	format    string
	logFile   string
}

// runFlags are the root command's own flags
type runFlags struct {
	clean     bool
	skipPre   bool
	dryRun    bool
	strict    bool
	writeLock bool
}

// env is what a command resolves before doing any work
type env struct {
	root     string
	settings *config.Settings
	format   ui.Format
	fs       filesystem.FS
}

// NewRootCmd creates and returns the root command
func (a *App) NewRootCmd() *cobra.Command {
	var (
		global globalFlags
		run    runFlags
	)

	rootCmd := &cobra.Command{
		Use:     "subboot",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format, err := ui.ParseFormat(global.format)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, MsgErrFormat)
			}
			a.setupLogging(logging.Options{
				Verbosity: global.verbosity,
				Console:   a.Err,
				NoColor:   ui.Resolve(format, a.Err) != ui.FormatTerminal,
				LogFile:   global.logFile,
			})
			a.logger.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMain(cmd.Context(), global, run)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.SetIn(a.In)
	rootCmd.SetOut(a.Out)
	rootCmd.SetErr(a.Err)
	rootCmd.SetVersionTemplate(version.String() + "\n")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrInvalidInput, MsgErrUsage)
	})
	initTemplateFormatting()
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&global.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVarP(&global.only, "only", "o", "", MsgFlagOnly)
	pf.StringVar(&global.config, "config", "", MsgFlagConfig)
	pf.StringVar(&global.format, "format", "auto", MsgFlagFormat)
	pf.StringVar(&global.logFile, "log-file", "", MsgFlagLogFile)

	f := rootCmd.Flags()
	f.BoolVarP(&run.clean, "clean", "c", false, MsgFlagClean)
	f.BoolVarP(&run.skipPre, "skip-pre", "s", false, MsgFlagSkipPre)
	f.BoolVar(&run.dryRun, "dry-run", false, MsgFlagDryRun)
	f.BoolVar(&run.strict, "strict", false, MsgFlagStrict)
	f.BoolVar(&run.writeLock, "write-lock", false, MsgFlagWriteLock)

	rootCmd.AddCommand(a.newValidateCmd(&global))
	rootCmd.AddCommand(a.newStatusCmd(&global))
	rootCmd.AddCommand(a.newVersionCmd())

	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		_, _ = topics.Initialize(rootCmd, sub, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.RendererFor(ui.DetectFormat(a.Out) == ui.FormatTerminal),
		})
	}

	return rootCmd
}

// Execute runs the command line in args
func (a *App) Execute(ctx context.Context, args []string) error {
	cmd := a.NewRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func (a *App) resolve(global globalFlags) (*env, error) {
	root, err := a.projectRoot()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, MsgErrWorkingDir)
	}

	overrides := map[string]interface{}{}
	if global.config != "" {
		overrides["manifest"] = global.config
	}
	settings, err := config.LoadSettings(root, overrides)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, MsgErrSettings)
	}

	format, _ := ui.ParseFormat(global.format)
	return &env{
		root:     root,
		settings: settings,
		format:   ui.Resolve(format, a.Out),
		fs:       filesystem.NewOS(),
	}, nil
}

func (a *App) linkManager(e *env, dryRun bool) *links.Manager {
	return links.NewManager(links.Options{
		ProjectRoot:     e.root,
		ExternalLibsDir: e.settings.ExternalLibsDir,
		Relative:        e.settings.Links.Relative,
		DryRun:          dryRun,
		FS:              e.fs,
		Logger:          a.logger,
	})
}

func (a *App) gitDriver(e *env, dryRun bool) *git.Driver {
	return git.NewDriver(git.Options{
		ProjectRoot: e.root,
		Settings:    e.settings,
		FS:          e.fs,
		Executor:    a.Executor,
		Logger:      a.logger,
		DryRun:      dryRun,
		Getenv:      a.Getenv,
	})
}

func (a *App) runMain(ctx context.Context, global globalFlags, run runFlags) error {
	e, err := a.resolve(global)
	if err != nil {
		return err
	}

	opts := types.RunOptions{
		Mode:           types.ModeBootstrap,
		SkipHooks:      run.skipPre,
		OnlyDependency: global.only,
		DryRun:         run.dryRun,
		Strict:         run.strict,
		WriteLock:      run.writeLock,
	}
	if run.clean {
		opts.Mode = types.ModeClean
	}

	if !opts.DryRun {
		ok, err := ui.Confirm(a.In, a.Out, ui.PromptText(opts.Mode), e.format)
		if err != nil {
			return err
		}
		if !ok {
			if opts.Mode == types.ModeClean {
				a.logger.Info().Msg(MsgAbortClean)
			} else {
				a.logger.Info().Msg(MsgAbortBootstrap)
			}
			return nil
		}
	}

	runner := bootstrap.NewRunner(bootstrap.Options{
		ProjectRoot: e.root,
		Settings:    e.settings,
		FS:          e.fs,
		Git:         a.gitDriver(e, opts.DryRun),
		Hooks: hooks.NewRunner(hooks.Options{
			Shell:    e.settings.Hooks.Shell,
			Timeout:  e.settings.Hooks.Timeout,
			DryRun:   opts.DryRun,
			Output:   a.Out,
			Executor: a.Executor,
			FS:       e.fs,
			Logger:   a.logger,
		}),
		Links:  a.linkManager(e, opts.DryRun),
		Logger: a.logger,
	})

	report, err := runner.Run(ctx, opts)
	if err != nil {
		return err
	}

	if len(report.Results) == 0 && len(report.Hooks) == 0 && len(report.NoActions) == 0 {
		return ui.NewRenderer(e.format, a.Out).RenderMessage(MsgNoDependencies)
	}
	if err := ui.NewRenderer(e.format, a.Out).RenderSummary(report); err != nil {
		return err
	}

	if opts.Strict && report.Failed() {
		failed := report.Count(links.OutcomeFailed) + len(report.Hooks) + report.Invalid()
		return errors.Newf(errors.ErrStrictFailures, MsgErrStrict, failed)
	}
	return nil
}
