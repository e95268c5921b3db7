// Package bootstrap sequences a subboot run: load the manifest, sync
// submodules (bootstrap only), then for each selected dependency run its
// hooks and apply or remove its links. Per-item problems are collected in a
// Report; only configuration and git failures abort the run.
package bootstrap
