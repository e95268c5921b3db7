package hooks

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/subboot/pkg/config"
	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/arthur-debert/subboot/pkg/filesystem"
	"github.com/arthur-debert/subboot/pkg/logging"
	"github.com/arthur-debert/subboot/pkg/shell"
	"github.com/rs/zerolog"
)

// DefaultShell is used when Options.Shell is empty
const DefaultShell = "/bin/sh"

// Options configures a Runner
type Options struct {
	Shell   string
	Timeout time.Duration
	DryRun  bool
	// Output receives the commands' combined output. Nil discards it.
	Output   io.Writer
	Executor shell.Executor
	// FS resolves `cd` targets. Defaults to the OS filesystem.
	FS     filesystem.FS
	Logger zerolog.Logger
}

// Runner executes hook command lists
type Runner struct {
	shell    string
	timeout  time.Duration
	dryRun   bool
	output   io.Writer
	executor shell.Executor
	fs       filesystem.FS
	logger   zerolog.Logger
}

// NewRunner creates a hook runner
func NewRunner(opts Options) *Runner {
	r := &Runner{
		shell:    opts.Shell,
		timeout:  opts.Timeout,
		dryRun:   opts.DryRun,
		output:   opts.Output,
		executor: opts.Executor,
		fs:       opts.FS,
		logger:   logging.Component(opts.Logger, "hooks"),
	}
	if r.shell == "" {
		r.shell = DefaultShell
	}
	if r.executor == nil {
		r.executor = &shell.RealExecutor{}
	}
	if r.fs == nil {
		r.fs = filesystem.NewOS()
	}
	return r
}

// Run executes commands in order starting in dir. It stops at the first
// failure and returns a HOOK_FAILED error naming the failing command.
func (r *Runner) Run(ctx context.Context, commands []string, dir string) error {
	start := dir
	current := dir

	for i, command := range commands {
		command = strings.TrimSpace(command)
		if command == "" {
			continue
		}

		if target, ok := parseCd(command); ok {
			next := cdTarget(start, current, target)
			if r.dryRun {
				// nothing has been checked out, so the target may not exist yet
				r.logger.Info().Str("command", command).Str("dir", current).Msg("Would change hook directory")
				current = next
				continue
			}
			if err := r.checkDir(next); err != nil {
				r.logger.Error().
					Str("command", command).
					Str("dir", current).
					Msg("Hook failed")
				return errors.Wrapf(err, errors.ErrHookFailed, "hook %q failed", command).
					WithDetail("index", i).
					WithDetail("dir", current)
			}
			r.logger.Debug().Str("from", current).Str("to", next).Msg("Changing hook directory")
			current = next
			continue
		}

		if r.dryRun {
			r.logger.Info().Str("command", command).Str("dir", current).Msg("Would run hook")
			continue
		}

		r.logger.Info().Str("command", command).Str("dir", current).Msg("Running hook")
		res, err := shell.Run(ctx, r.executor, shell.Command{
			Name:    r.shell,
			Args:    []string{"-c", command},
			Dir:     current,
			Timeout: r.timeout,
			Stream:  r.output,
		})
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("command", command).
				Str("dir", current).
				Int("exitCode", res.ExitCode).
				Msg("Hook failed")
			return errors.Wrapf(err, errors.ErrHookFailed, "hook %q failed", command).
				WithDetail("index", i).
				WithDetail("dir", current).
				WithDetail("exitCode", res.ExitCode)
		}
		r.logger.Debug().
			Str("command", command).
			Dur("duration", res.Duration).
			Msg("Hook completed")
	}

	return nil
}

// parseCd recognizes "cd" and "cd <dir>". Anything combined with other shell
// syntax is left to the shell, where it only affects that one command.
func parseCd(command string) (string, bool) {
	fields := strings.Fields(command)
	if len(fields) == 0 || fields[0] != "cd" {
		return "", false
	}
	if len(fields) > 2 || strings.ContainsAny(command, ";|&<>$`") {
		return "", false
	}
	if len(fields) == 1 {
		return "", true
	}
	return strings.Trim(fields[1], `"'`), true
}

// cdTarget resolves a cd target against the running directory. An empty
// target returns to the directory the list started in.
func cdTarget(start, current, target string) string {
	var next string
	switch {
	case target == "":
		next = start
	case strings.HasPrefix(target, "~"):
		next = config.ExpandHome(target)
	case filepath.IsAbs(target):
		next = target
	default:
		next = filepath.Join(current, target)
	}
	return filepath.Clean(next)
}

func (r *Runner) checkDir(dir string) error {
	info, err := r.fs.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrHookInvalid, "cannot change to %s", dir)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrHookInvalid, "not a directory: %s", dir)
	}
	return nil
}
