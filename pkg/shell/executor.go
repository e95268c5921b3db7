package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/arthur-debert/subboot/pkg/errors"
)

// Executor creates exec.Cmd instances.
type Executor interface {
	// CommandContext creates a new context-aware exec.Cmd instance.
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// RealExecutor is the production Executor backed by os/exec.
type RealExecutor struct{}

// CommandContext creates a standard context-aware exec.Cmd.
func (e *RealExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

// Command describes one process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory of the child. The parent's directory is
	// never changed.
	Dir string
	// Env is appended to the parent environment.
	Env []string
	// Timeout bounds the run; zero means no limit beyond ctx.
	Timeout time.Duration
	// Stream, when set, receives output as it is produced in addition to
	// the captured copy.
	Stream io.Writer
}

// Result is the outcome of a finished process.
type Result struct {
	Output   string
	ExitCode int
	Duration time.Duration
}

// Run starts c and waits for it. A non-zero exit is returned as an
// ErrRunFailed error alongside the populated Result.
func Run(ctx context.Context, ex Executor, c Command) (Result, error) {
	if c.Name == "" {
		return Result{ExitCode: -1}, errors.New(errors.ErrInvalidInput, "command requires a name")
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	if c.Dir != "" {
		if _, err := os.Stat(c.Dir); err != nil {
			return Result{ExitCode: -1}, errors.Wrapf(err, errors.ErrFileAccess,
				"working directory does not exist: %s", c.Dir)
		}
	}

	cmd := ex.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var out bytes.Buffer
	var w io.Writer = &out
	if c.Stream != nil {
		w = io.MultiWriter(&out, c.Stream)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Output:   out.String(),
		ExitCode: -1,
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return res, errors.Wrapf(err, errors.ErrRunFailed, "%s timed out after %s", c.Name, c.Timeout)
		}
		return res, errors.Wrapf(err, errors.ErrRunFailed, "%s failed", c.Name).
			WithDetail("exitCode", res.ExitCode)
	}
	return res, nil
}
