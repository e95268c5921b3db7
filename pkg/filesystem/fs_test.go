package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fsys := NewOS()
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "widget.h")

	require.NoError(t, fsys.WriteFile(testFile, []byte("#pragma once\n"), 0644))

	content, err := fsys.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "#pragma once\n", string(content))

	link := filepath.Join(tmpDir, "sub", "link.h")
	require.NoError(t, fsys.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, fsys.Symlink(testFile, link))

	assert.True(t, IsSymlink(fsys, link))
	assert.False(t, IsSymlink(fsys, testFile))
	assert.True(t, IsRegularFile(fsys, link))
	assert.True(t, IsDir(fsys, tmpDir))

	target, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, testFile, target)

	require.NoError(t, fsys.Remove(link))
	assert.False(t, Exists(fsys, link))
	assert.True(t, Exists(fsys, testFile))
}

func TestExists_DanglingLink(t *testing.T) {
	fsys := NewOS()
	tmpDir := t.TempDir()
	link := filepath.Join(tmpDir, "dangling")

	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "nowhere"), link))

	assert.True(t, Exists(fsys, link))
	assert.True(t, IsSymlink(fsys, link))
	assert.False(t, IsRegularFile(fsys, link))
}

// plainFs hides every optional afero interface of the wrapped filesystem
type plainFs struct{ afero.Fs }

func TestMemoryFS_NoSymlinks(t *testing.T) {
	fsys := New(plainFs{afero.NewMemMapFs()})

	require.NoError(t, fsys.WriteFile("/project/submodules.yml", []byte("[]"), 0644))
	content, err := fsys.ReadFile("/project/submodules.yml")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(content))

	err = fsys.Symlink("/a", "/b")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoSymlinks))

	_, err = fsys.Lstat("/project/submodules.yml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoSymlinks))
	assert.False(t, IsSymlink(fsys, "/project/submodules.yml"))

	_, err = fsys.ReadFile("/project")
	assert.Error(t, err)
}
