// Package git drives the git CLI to initialize and update the project's
// submodules.
//
// Submodules live at <external-libs>/<name> relative to the project root.
// Initialization registers every requested path in one call; updates then
// run one submodule at a time so each can be given its own credential
// environment. Git is always invoked with GIT_TERMINAL_PROMPT=0 so an
// unreachable remote fails instead of blocking on a password prompt.
package git
