package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/spf13/afero"
)

// FS is the set of filesystem operations subboot performs
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Remove(name string) error
	// Afero exposes the underlying afero filesystem.
	Afero() afero.Fs
}

// aferoFS implements FS on top of an afero filesystem
type aferoFS struct {
	fs afero.Fs
}

// New wraps an afero filesystem
func New(fsys afero.Fs) FS {
	return &aferoFS{fs: fsys}
}

// NewOS returns the real operating system filesystem
func NewOS() FS {
	return New(afero.NewOsFs())
}

func (a *aferoFS) Afero() afero.Fs {
	return a.fs
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if l, ok := a.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return nil, noSymlinks("lstat", name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	if l, ok := a.fs.(afero.Linker); ok {
		return l.SymlinkIfPossible(oldname, newname)
	}
	return noSymlinks("symlink", newname)
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if l, ok := a.fs.(afero.LinkReader); ok {
		return l.ReadlinkIfPossible(name)
	}
	return "", noSymlinks("readlink", name)
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func noSymlinks(op, path string) error {
	return errors.Newf(errors.ErrNoSymlinks, "%s %s: filesystem does not support symlinks", op, path)
}

// IsSymlink reports whether path exists and is a symbolic link.
func IsSymlink(fsys FS, path string) bool {
	info, err := fsys.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// IsRegularFile reports whether path resolves to a regular file.
func IsRegularFile(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsDir reports whether path resolves to a directory.
func IsDir(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Exists reports whether anything, including a dangling link, is at path.
func Exists(fsys FS, path string) bool {
	if _, err := fsys.Lstat(path); err == nil {
		return true
	}
	_, err := fsys.Stat(path)
	return err == nil
}
