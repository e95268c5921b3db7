// Package lockfile records which commit each submodule was bootstrapped at.
package lockfile

import (
	"sort"
	"time"

	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/arthur-debert/subboot/pkg/filesystem"
	"github.com/arthur-debert/subboot/pkg/internal/hashutil"
	toml "github.com/pelletier/go-toml/v2"
)

// DefaultFile is the lock file name relative to the project root
const DefaultFile = "submodules.lock"

// Lock is the document written to the lock file
type Lock struct {
	Generated time.Time `toml:"generated"`
	// Manifest is the checksum of the manifest the pins were taken from
	Manifest   string      `toml:"manifest,omitempty"`
	Submodules []Submodule `toml:"submodule"`
}

// Submodule pins one dependency's checkout
type Submodule struct {
	Name   string `toml:"name"`
	Path   string `toml:"path"`
	URL    string `toml:"url"`
	Commit string `toml:"commit"`
}

// Stale reports whether the manifest changed since the lock was written.
// A lock without a recorded checksum is never stale.
func (l *Lock) Stale(fsys filesystem.FS, manifestPath string) (bool, error) {
	if l.Manifest == "" {
		return false, nil
	}
	sum, err := hashutil.File(fsys.Afero(), manifestPath)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to checksum %s", manifestPath)
	}
	return sum != l.Manifest, nil
}

// Find returns the entry for name, if any
func (l *Lock) Find(name string) (Submodule, bool) {
	for _, s := range l.Submodules {
		if s.Name == name {
			return s, true
		}
	}
	return Submodule{}, false
}

// Merge replaces entries with the same name and appends new ones, keeping
// entries sorted by name. Dependencies not in update keep their pins, so a
// run filtered to one dependency does not drop the others.
func (l *Lock) Merge(update []Submodule) {
	byName := make(map[string]Submodule, len(l.Submodules)+len(update))
	for _, s := range l.Submodules {
		byName[s.Name] = s
	}
	for _, s := range update {
		byName[s.Name] = s
	}

	l.Submodules = l.Submodules[:0]
	for _, s := range byName {
		l.Submodules = append(l.Submodules, s)
	}
	sort.Slice(l.Submodules, func(i, j int) bool {
		return l.Submodules[i].Name < l.Submodules[j].Name
	})
}

// Read loads a lock file. A missing file is an empty lock.
func Read(fsys filesystem.FS, path string) (*Lock, error) {
	if !filesystem.Exists(fsys, path) {
		return &Lock{}, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read lock file %s", path)
	}

	var lock Lock
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse lock file %s", path)
	}
	return &lock, nil
}

// Write serializes lock to path
func Write(fsys filesystem.FS, path string, lock *Lock) error {
	data, err := toml.Marshal(lock)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode lock file")
	}

	header := []byte("# Generated by subboot --write-lock. Do not edit.\n\n")
	if err := fsys.WriteFile(path, append(header, data...), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write lock file %s", path)
	}
	return nil
}
