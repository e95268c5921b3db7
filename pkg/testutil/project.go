package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// FileTree represents a directory structure for testing. Values are either
// file contents (string) or nested FileTrees.
type FileTree map[string]interface{}

// Project is an isolated project root on the real filesystem
type Project struct {
	Root string

	t *testing.T
}

// NewProject creates an empty project in a temp directory
func NewProject(t *testing.T) *Project {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return &Project{Root: root, t: t}
}

// Path joins elements onto the project root
func (p *Project) Path(elem ...string) string {
	return filepath.Join(append([]string{p.Root}, elem...)...)
}

// WithFileTree creates a complete file tree structure under the root
func (p *Project) WithFileTree(tree FileTree) *Project {
	p.t.Helper()
	createFileTree(p.t, p.Root, tree)
	return p
}

// WithCheckout lays out files inside external-libs/<name>
func (p *Project) WithCheckout(name string, tree FileTree) *Project {
	p.t.Helper()
	dir := p.Path("external-libs", name)
	require.NoError(p.t, os.MkdirAll(dir, 0755))
	createFileTree(p.t, dir, tree)
	return p
}

// WithManifest writes submodules.yml
func (p *Project) WithManifest(content string) *Project {
	p.t.Helper()
	require.NoError(p.t, os.WriteFile(p.Path("submodules.yml"), []byte(content), 0644))
	return p
}

// AssertSymlink checks that rel (relative to the root) is a symlink whose
// target resolves to the same file as wantTarget (relative to the root).
func (p *Project) AssertSymlink(rel, wantTarget string) {
	p.t.Helper()

	info, err := os.Lstat(p.Path(rel))
	require.NoError(p.t, err, "expected %s to exist", rel)
	require.True(p.t, info.Mode()&os.ModeSymlink != 0, "expected %s to be a symlink", rel)

	got, err := filepath.EvalSymlinks(p.Path(rel))
	require.NoError(p.t, err, "expected %s to resolve", rel)
	want, err := filepath.EvalSymlinks(p.Path(wantTarget))
	require.NoError(p.t, err)
	require.Equal(p.t, want, got)
}

// AssertNotExists checks that nothing, not even a dangling link, is at rel
func (p *Project) AssertNotExists(rel string) {
	p.t.Helper()
	_, err := os.Lstat(p.Path(rel))
	require.True(p.t, os.IsNotExist(err), "expected %s to be absent, got %v", rel, err)
}

// Snapshot returns every path under the root with its kind, for comparing
// trees before and after a run.
func (p *Project) Snapshot() map[string]string {
	p.t.Helper()

	out := make(map[string]string)
	err := filepath.Walk(p.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(p.Root, path)
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			target, _ := os.Readlink(path)
			out[rel] = "link:" + target
		case info.IsDir():
			out[rel] = "dir"
		default:
			out[rel] = "file"
		}
		return nil
	})
	require.NoError(p.t, err)
	return out
}

func createFileTree(t *testing.T, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
			require.NoError(t, os.WriteFile(fullPath, []byte(v), 0644))
		case FileTree:
			require.NoError(t, os.MkdirAll(fullPath, 0755))
			createFileTree(t, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
