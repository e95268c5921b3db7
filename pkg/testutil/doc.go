// Package testutil provides utilities for testing subboot components.
//
// Key components:
//   - Project: a real project tree in a temp directory, with helpers to lay
//     out submodule checkouts and manifests and to assert on symlinks
//   - RecordingExecutor: a shell.Executor that records invocations and can
//     script their output and exit status
//
// Symlink behaviour is always tested on the real filesystem; manifest
// parsing tests use afero.NewMemMapFs directly.
package testutil
