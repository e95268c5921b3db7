package testutil

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// Invocation is one command created through a RecordingExecutor. Cmd is the
// returned exec.Cmd, so Dir and Env reflect what the caller set on it.
type Invocation struct {
	Name string
	Args []string
	Cmd  *exec.Cmd
}

// Line renders the invocation as a single space separated string
func (i Invocation) Line() string {
	return strings.TrimSpace(i.Name + " " + strings.Join(i.Args, " "))
}

// Dir returns the working directory the caller assigned
func (i Invocation) Dir() string {
	return i.Cmd.Dir
}

// Env returns the environment the caller assigned
func (i Invocation) Env() []string {
	return i.Cmd.Env
}

// Response scripts a command's output and exit status
type Response struct {
	Output   string
	ExitCode int
}

// RecordingExecutor records every command. With a nil Respond it runs the
// real command; otherwise Respond decides the output and exit code and a
// stand-in shell process produces them.
type RecordingExecutor struct {
	Respond func(name string, args []string) Response

	mu    sync.Mutex
	calls []Invocation
}

// CommandContext records the call and returns the command to run
func (r *RecordingExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	var cmd *exec.Cmd
	if r.Respond == nil {
		cmd = exec.CommandContext(ctx, name, args...)
	} else {
		resp := r.Respond(name, args)
		script := `printf '%s' "$1"; exit ` + strconv.Itoa(resp.ExitCode)
		cmd = exec.CommandContext(ctx, "/bin/sh", "-c", script, "sh", resp.Output)
	}

	r.mu.Lock()
	r.calls = append(r.calls, Invocation{Name: name, Args: append([]string(nil), args...), Cmd: cmd})
	r.mu.Unlock()
	return cmd
}

// Calls returns the recorded invocations in order
func (r *RecordingExecutor) Calls() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Invocation(nil), r.calls...)
}

// Lines returns Line() for every recorded invocation
func (r *RecordingExecutor) Lines() []string {
	var lines []string
	for _, c := range r.Calls() {
		lines = append(lines, c.Line())
	}
	return lines
}
