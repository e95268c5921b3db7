// Package links creates and removes the symlinks declared by a dependency's
// link actions.
//
// Sources resolve against the dependency's checkout
// (<root>/<external-libs>/<name>), destinations against the project root.
// Every action produces a Result; nothing here aborts a run. Existing links
// are never replaced and non-links are never removed, so repeated runs are
// safe.
package links
