// Package logging builds the zerolog logger that every subboot component
// receives. There is no package-level logger: main constructs one handle,
// passes it down, and flushes it on exit.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const (
	// AppDirName is the directory subboot uses under XDG_STATE_HOME
	AppDirName = "subboot"

	// LogFileName is the name of the log file
	LogFileName = "subboot.log"
)

// Options configures New.
type Options struct {
	// Verbosity: 0 info, 1 debug, 2+ trace.
	Verbosity int
	// Console receives human readable output. Defaults to os.Stderr.
	Console io.Writer
	// NoColor disables ANSI colors on the console writer.
	NoColor bool
	// LogFile is appended to as JSON lines. Empty uses DefaultLogFilePath,
	// "-" disables file logging.
	LogFile string
}

// LevelFor maps a verbosity count onto a zerolog level
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.InfoLevel
	case verbosity == 1:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// New configures a logger with dual output to the console and a log file.
// The returned function flushes and closes the log file; it is safe to call
// when no file was opened.
func New(opts Options) (zerolog.Logger, func() error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}}

	logFile := opts.LogFile
	if logFile == "" {
		logFile = DefaultLogFilePath()
	}

	var (
		file    *os.File
		fileErr error
	)
	if logFile != "-" {
		file, fileErr = openLogFile(logFile)
		if fileErr == nil {
			writers = append(writers, file)
		}
	}

	logger := zerolog.New(io.MultiWriter(writers...)).
		Level(LevelFor(opts.Verbosity)).
		With().Timestamp().Logger()

	// Add caller information for trace level
	if opts.Verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}

	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	logger.Debug().Int("verbosity", opts.Verbosity).Str("logFile", logFile).Msg("Logger initialized")

	closer := func() error {
		if file == nil {
			return nil
		}
		if err := file.Sync(); err != nil {
			_ = file.Close()
			return fmt.Errorf("failed to flush log file: %w", err)
		}
		return file.Close()
	}

	return logger, closer
}

// Component returns a child logger tagged with the component name
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// Nop returns a disabled logger, handy as a default for optional fields.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// DefaultLogFilePath returns the path to the log file.
// It respects XDG_STATE_HOME if set at call time, otherwise uses the XDG default.
func DefaultLogFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	return filepath.Join(stateHome, AppDirName, LogFileName)
}

// openLogFile creates the log file and its parent directories
func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
