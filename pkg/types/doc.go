// Package types defines the data model shared by subboot's components:
// the dependencies declared in the manifest, their link actions, and the
// options that select how a run treats them.
package types
