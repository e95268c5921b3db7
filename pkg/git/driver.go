package git

import (
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/arthur-debert/subboot/pkg/config"
	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/arthur-debert/subboot/pkg/filesystem"
	"github.com/arthur-debert/subboot/pkg/logging"
	"github.com/arthur-debert/subboot/pkg/shell"
	"github.com/rs/zerolog"
)

// Options configures a Driver
type Options struct {
	ProjectRoot string
	Settings    *config.Settings
	FS          filesystem.FS
	Executor    shell.Executor
	Logger      zerolog.Logger
	DryRun      bool
	// Getenv looks up SSH_AUTH_SOCK. Defaults to os.Getenv.
	Getenv func(string) string
}

// Driver runs git submodule commands against one project
type Driver struct {
	root            string
	binary          string
	minVersion      string
	libsDir         string
	externalDir     string
	continueOnError bool
	ssh             config.SSHSettings

	fs       filesystem.FS
	executor shell.Executor
	logger   zerolog.Logger
	dryRun   bool
	getenv   func(string) string
}

// Submodule describes a checked out submodule
type Submodule struct {
	Name   string
	Path   string
	URL    string
	Commit string
}

// State is a submodule's state as reported by `git submodule status`
type State string

const (
	StateOK            State = "ok"
	StateUninitialized State = "uninitialized"
	StateModified      State = "modified"
	StateConflict      State = "conflict"
	StateUnknown       State = "unknown"
)

// NewDriver creates a Driver
func NewDriver(opts Options) *Driver {
	s := opts.Settings
	if s == nil {
		s, _ = config.DefaultSettings()
	}

	d := &Driver{
		root:            opts.ProjectRoot,
		binary:          s.Git.Binary,
		minVersion:      s.Git.MinVersion,
		libsDir:         s.LibsDir,
		externalDir:     s.ExternalLibsDir,
		continueOnError: s.Git.ContinueOnError,
		ssh:             s.Git.SSH,
		fs:              opts.FS,
		executor:        opts.Executor,
		logger:          logging.Component(opts.Logger, "git"),
		dryRun:          opts.DryRun,
		getenv:          opts.Getenv,
	}
	if d.binary == "" {
		d.binary = "git"
	}
	if d.fs == nil {
		d.fs = filesystem.NewOS()
	}
	if d.executor == nil {
		d.executor = &shell.RealExecutor{}
	}
	if d.getenv == nil {
		d.getenv = os.Getenv
	}
	return d
}

// SubmodulePath returns the slash separated, root relative path of a
// dependency's submodule
func (d *Driver) SubmodulePath(name string) string {
	return path.Join(filepath.ToSlash(d.externalDir), name)
}

// Prepare creates the libs directory. An existing directory is not an error.
func (d *Driver) Prepare() error {
	dir := filepath.Join(d.root, d.libsDir)
	if d.dryRun {
		d.logger.Info().Str("dir", dir).Msg("Would create libs directory")
		return nil
	}
	if err := d.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}
	return nil
}

// CheckVersion runs `git --version` and compares it to the configured minimum
func (d *Driver) CheckVersion(ctx context.Context) (*semver.Version, error) {
	res, err := d.git(ctx, nil, "--version")
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrGitUnavailable) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.ErrGitVersion, "cannot determine the git version")
	}
	v, err := ParseVersion(res.Output)
	if err != nil {
		return nil, err
	}
	if err := CheckMinimum(v, d.minVersion); err != nil {
		return v, err
	}
	d.logger.Debug().Str("version", v.String()).Msg("Found git")
	return v, nil
}

// Sync prepares the libs directory, then initializes and updates the
// submodules of the named dependencies
func (d *Driver) Sync(ctx context.Context, names []string) error {
	if err := d.Prepare(); err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}
	if _, err := d.CheckVersion(ctx); err != nil {
		return err
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, d.SubmodulePath(name))
	}

	if err := d.Init(ctx, paths); err != nil {
		return err
	}

	var failed []string
	for i, p := range paths {
		if err := d.Update(ctx, p); err != nil {
			if !d.continueOnError {
				return err
			}
			d.logger.Error().Err(err).Str("submodule", names[i]).Msg("Submodule update failed, continuing")
			failed = append(failed, names[i])
		}
	}

	if len(failed) > 0 {
		return errors.Newf(errors.ErrSubmoduleUpdate, "%d submodule(s) failed to update: %s",
			len(failed), strings.Join(failed, ", ")).
			WithDetail("failed", failed)
	}
	return nil
}

// Init registers paths in .git/config. Existing entries are left untouched.
func (d *Driver) Init(ctx context.Context, paths []string) error {
	args := append([]string{"submodule", "init", "--"}, paths...)
	if d.dryRun {
		d.logger.Info().Str("command", d.binary+" "+strings.Join(args, " ")).Msg("Would run git")
		return nil
	}

	d.logger.Info().Strs("paths", paths).Msg("Initializing submodules")
	if _, err := d.git(ctx, nil, args...); err != nil {
		return errors.Wrap(err, errors.ErrSubmoduleInit, "git submodule init failed").
			WithDetail("paths", paths)
	}
	return nil
}

// Update fetches and checks out one submodule, recursively
func (d *Driver) Update(ctx context.Context, submodulePath string) error {
	args := []string{"submodule", "update", "--recursive", "--", submodulePath}
	if d.dryRun {
		d.logger.Info().Str("command", d.binary+" "+strings.Join(args, " ")).Msg("Would run git")
		return nil
	}

	remote, err := d.RemoteURL(ctx, submodulePath)
	if err != nil {
		d.logger.Debug().Err(err).Str("path", submodulePath).Msg("No remote URL in .gitmodules")
	}
	cred := ResolveCredential(remote, d.ssh, d.getenv("SSH_AUTH_SOCK"), d.fs.Afero())

	d.logger.Info().
		Str("path", submodulePath).
		Str("url", remote).
		Str("credential", cred.Kind.String()).
		Msg("Updating submodule")
	if _, err := d.git(ctx, cred.Env(), args...); err != nil {
		return errors.Wrapf(err, errors.ErrSubmoduleUpdate, "failed to update %s", submodulePath).
			WithDetail("path", submodulePath).
			WithDetail("url", remote)
	}
	return nil
}

// RemoteURL reads a submodule's url from .gitmodules
func (d *Driver) RemoteURL(ctx context.Context, submodulePath string) (string, error) {
	res, err := d.git(ctx, nil, "config", "-f", ".gitmodules", "--get", "submodule."+submodulePath+".url")
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrSubmoduleInspect, "no url for %s", submodulePath)
	}
	return strings.TrimSpace(res.Output), nil
}

// Revision returns the commit checked out in a submodule
func (d *Driver) Revision(ctx context.Context, submodulePath string) (string, error) {
	dir := filepath.Join(d.root, filepath.FromSlash(submodulePath))
	res, err := shell.Run(ctx, d.executor, shell.Command{
		Name: d.binary,
		Args: []string{"rev-parse", "HEAD"},
		Dir:  dir,
		Env:  []string{"GIT_TERMINAL_PROMPT=0"},
	})
	if err != nil {
		return "", d.classify(err, res, errors.ErrSubmoduleInspect, "rev-parse HEAD")
	}
	return strings.TrimSpace(res.Output), nil
}

// Describe collects name, path, remote and commit of a dependency's submodule
func (d *Driver) Describe(ctx context.Context, name string) (Submodule, error) {
	sm := Submodule{Name: name, Path: d.SubmodulePath(name)}

	url, err := d.RemoteURL(ctx, sm.Path)
	if err != nil {
		return sm, err
	}
	sm.URL = url

	commit, err := d.Revision(ctx, sm.Path)
	if err != nil {
		return sm, err
	}
	sm.Commit = commit
	return sm, nil
}

// Status parses `git submodule status` into a path -> State map
func (d *Driver) Status(ctx context.Context) (map[string]State, error) {
	res, err := d.git(ctx, nil, "submodule", "status")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSubmoduleInspect, "git submodule status failed")
	}
	return ParseStatus(res.Output), nil
}

// ParseStatus parses the output of `git submodule status`. Each line is
// " <sha> <path> (<desc>)", with the first column replaced by '-' for
// uninitialized, '+' for a checkout that differs from the index and 'U' for
// merge conflicts.
func ParseStatus(output string) map[string]State {
	result := make(map[string]State)
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		state := StateOK
		switch line[0] {
		case '-':
			state = StateUninitialized
		case '+':
			state = StateModified
		case 'U':
			state = StateConflict
		case ' ':
		default:
			state = StateUnknown
		}

		parts := strings.Fields(line[1:])
		if len(parts) >= 2 {
			result[parts[1]] = state
		}
	}
	return result
}

func (d *Driver) git(ctx context.Context, env []string, args ...string) (shell.Result, error) {
	if env == nil {
		env = []string{"GIT_TERMINAL_PROMPT=0"}
	}
	d.logger.Debug().Str("command", d.binary+" "+strings.Join(args, " ")).Msg("Running git")

	res, err := shell.Run(ctx, d.executor, shell.Command{
		Name: d.binary,
		Args: args,
		Dir:  d.root,
		Env:  env,
	})
	if err != nil {
		return res, d.classify(err, res, errors.ErrRunFailed, strings.Join(args, " "))
	}
	return res, nil
}

// classify maps a missing binary to GIT_UNAVAILABLE and attaches git's
// output to everything else
func (d *Driver) classify(err error, res shell.Result, code errors.ErrorCode, what string) error {
	if !errors.IsErrorCode(err, errors.ErrFileAccess) && stderrors.Is(err, exec.ErrNotFound) {
		return errors.Wrapf(err, errors.ErrGitUnavailable, "git binary %q not found", d.binary)
	}
	out := strings.TrimSpace(res.Output)
	if out != "" {
		d.logger.Debug().Str("output", out).Msg("git output")
	}
	return errors.Wrapf(err, code, "git %s failed", what).
		WithDetail("output", out)
}
