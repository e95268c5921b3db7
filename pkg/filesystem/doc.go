// Package filesystem provides the filesystem abstraction used by the manifest
// loader and the link manager.
//
// Everything goes through an afero.Fs so tests can swap in an in-memory
// filesystem for plain file work. Symlink operations need a backing
// filesystem that implements afero's Lstater, Linker and LinkReader
// interfaces (afero.OsFs does); other filesystems report ErrNoSymlinks.
package filesystem
