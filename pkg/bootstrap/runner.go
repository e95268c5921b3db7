package bootstrap

import (
	"context"
	"path/filepath"
	"time"

	"github.com/arthur-debert/subboot/pkg/config"
	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/arthur-debert/subboot/pkg/filesystem"
	"github.com/arthur-debert/subboot/pkg/git"
	"github.com/arthur-debert/subboot/pkg/internal/hashutil"
	"github.com/arthur-debert/subboot/pkg/links"
	"github.com/arthur-debert/subboot/pkg/lockfile"
	"github.com/arthur-debert/subboot/pkg/logging"
	"github.com/arthur-debert/subboot/pkg/types"
	"github.com/rs/zerolog"
)

// SubmoduleDriver fetches dependency checkouts
type SubmoduleDriver interface {
	Sync(ctx context.Context, names []string) error
	Describe(ctx context.Context, name string) (git.Submodule, error)
}

// HookRunner executes a hook command list in a directory
type HookRunner interface {
	Run(ctx context.Context, commands []string, dir string) error
}

// Options configures a Runner
type Options struct {
	ProjectRoot string
	Settings    *config.Settings
	FS          filesystem.FS
	Git         SubmoduleDriver
	Hooks       HookRunner
	Links       *links.Manager
	Logger      zerolog.Logger
	// Now stamps the lock file. Defaults to time.Now.
	Now func() time.Time
}

// Runner executes bootstrap and clean runs
type Runner struct {
	root     string
	settings *config.Settings
	fs       filesystem.FS
	git      SubmoduleDriver
	hooks    HookRunner
	links    *links.Manager
	logger   zerolog.Logger
	now      func() time.Time
}

// NewRunner creates a Runner. Git, Hooks and Links must be set.
func NewRunner(opts Options) *Runner {
	r := &Runner{
		root:     opts.ProjectRoot,
		settings: opts.Settings,
		fs:       opts.FS,
		git:      opts.Git,
		hooks:    opts.Hooks,
		links:    opts.Links,
		logger:   logging.Component(opts.Logger, "bootstrap"),
		now:      opts.Now,
	}
	if r.settings == nil {
		r.settings, _ = config.DefaultSettings()
	}
	if r.fs == nil {
		r.fs = filesystem.NewOS()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Load reads the manifest and applies the --only filter
func (r *Runner) Load(only string) ([]types.Dependency, error) {
	path := r.settings.ManifestPath(r.root)
	deps, err := config.LoadManifest(r.fs.Afero(), path)
	if err != nil {
		return nil, err
	}
	r.logger.Debug().Str("manifest", path).Int("dependencies", len(deps)).Msg("Loaded manifest")

	if only == "" {
		return deps, nil
	}
	selected := types.Filter(deps, only)
	if len(selected) == 0 {
		r.logger.Warn().Str("only", only).Strs("available", types.Names(deps)).
			Msg("No dependency matches --only")
	}
	return selected, nil
}

// Run performs one bootstrap or clean run
func (r *Runner) Run(ctx context.Context, opts types.RunOptions) (*Report, error) {
	done := logging.LogOperationStart(r.logger, opts.Mode.String())
	defer done()

	deps, err := r.Load(opts.OnlyDependency)
	if err != nil {
		return nil, err
	}

	report := &Report{Mode: opts.Mode, DryRun: opts.DryRun}

	if opts.Mode == types.ModeBootstrap {
		if err := r.git.Sync(ctx, types.Names(deps)); err != nil {
			return report, err
		}
	}

	for _, dep := range deps {
		r.process(ctx, opts, dep, report)
	}

	if opts.Mode == types.ModeBootstrap && opts.WriteLock {
		if err := r.writeLock(ctx, deps, opts.DryRun, report); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (r *Runner) process(ctx context.Context, opts types.RunOptions, dep types.Dependency, report *Report) {
	log := r.logger.With().Str("dependency", dep.Name).Logger()
	log.Info().Msgf("Processing %q", dep.Name)

	if !opts.SkipHooks {
		if commands := dep.Hooks(opts.Mode); len(commands) > 0 {
			dir := r.hookDir(dep.Name)
			if err := r.hooks.Run(ctx, commands, dir); err != nil {
				log.Error().Err(err).Msg("Hooks failed, skipping link actions")
				report.Hooks = append(report.Hooks, HookFailure{Dependency: dep.Name, Err: err})
				return
			}
		}
	}

	if len(dep.Actions) == 0 {
		log.Info().Msgf("No action specified for %q, skipping.", dep.Name)
		report.NoActions = append(report.NoActions, dep.Name)
		return
	}

	report.Results = append(report.Results, r.links.Process(opts.Mode, dep)...)
}

// hookDir is the dependency checkout when present, else the project root
func (r *Runner) hookDir(name string) string {
	dir := r.links.CheckoutDir(name)
	if filesystem.IsDir(r.fs, dir) {
		return dir
	}
	r.logger.Debug().Str("dependency", name).Str("dir", r.root).Msg("Checkout missing, running hooks in project root")
	return r.root
}

func (r *Runner) writeLock(ctx context.Context, deps []types.Dependency, dryRun bool, report *Report) error {
	path := r.settings.Lockfile
	if path == "" {
		path = lockfile.DefaultFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, path)
	}

	var pins []lockfile.Submodule
	for _, dep := range deps {
		sm, err := r.git.Describe(ctx, dep.Name)
		if err != nil {
			r.logger.Warn().Err(err).Str("dependency", dep.Name).Msg("Cannot pin submodule, leaving it out of the lock file")
			continue
		}
		pins = append(pins, lockfile.Submodule{Name: sm.Name, Path: sm.Path, URL: sm.URL, Commit: sm.Commit})
	}

	if dryRun {
		r.logger.Info().Str("path", path).Int("submodules", len(pins)).Msg("Would write lock file")
		return nil
	}

	lock, err := lockfile.Read(r.fs, path)
	if err != nil {
		return err
	}
	for _, pin := range pins {
		if old, ok := lock.Find(pin.Name); ok && old.Commit != pin.Commit {
			r.logger.Info().Str("dependency", pin.Name).Str("from", old.Commit).Str("to", pin.Commit).Msg("Pin updated")
		}
	}
	lock.Generated = r.now().UTC()
	lock.Merge(pins)
	if sum, err := hashutil.File(r.fs.Afero(), r.settings.ManifestPath(r.root)); err == nil {
		lock.Manifest = sum
	}
	if err := lockfile.Write(r.fs, path, lock); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write lock file")
	}

	r.logger.Info().Str("path", path).Int("submodules", len(pins)).Msg("Wrote lock file")
	report.LockFile = path
	return nil
}
