// Package shell runs external processes for subboot: git for the submodule
// driver and the user's shell for pre-install/pre-remove hooks.
//
// Process creation goes through the Executor interface so tests can record
// invocations or substitute scripted commands without touching the real
// binaries.
package shell
