package subboot

import (
	"io"
	"os"

	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/arthur-debert/subboot/pkg/logging"
	"github.com/arthur-debert/subboot/pkg/shell"
	"github.com/rs/zerolog"
)

// App holds what a command invocation needs from its environment
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
	// Dir is the project root. Empty means the working directory.
	Dir string
	// Executor creates git and hook processes
	Executor shell.Executor
	// Getenv looks up SSH_AUTH_SOCK for the git driver
	Getenv func(string) string

	logger   zerolog.Logger
	closeLog func() error
}

// NewApp returns an App wired to the process environment
func NewApp() *App {
	return &App{
		In:       os.Stdin,
		Out:      os.Stdout,
		Err:      os.Stderr,
		Executor: &shell.RealExecutor{},
		Getenv:   os.Getenv,
		logger:   logging.Nop(),
	}
}

func (a *App) setupLogging(opts logging.Options) {
	if a.closeLog != nil {
		_ = a.closeLog()
	}
	a.logger, a.closeLog = logging.New(opts)
}

// Close flushes the log file
func (a *App) Close() error {
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	return err
}

func (a *App) projectRoot() (string, error) {
	if a.Dir != "" {
		return a.Dir, nil
	}
	return os.Getwd()
}

// ExitCode maps a command error to the process exit status: 0 on success,
// 2 when --strict saw failed work, 1 for everything else, including fatal
// git failures.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsErrorCode(err, errors.ErrStrictFailures):
		return 2
	default:
		return 1
	}
}
