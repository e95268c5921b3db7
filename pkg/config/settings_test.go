package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s, err := DefaultSettings()
	require.NoError(t, err)

	assert.Equal(t, "submodules.yml", s.Manifest)
	assert.Equal(t, "libs", s.LibsDir)
	assert.Equal(t, "external-libs", s.ExternalLibsDir)
	assert.Equal(t, "/bin/sh", s.Hooks.Shell)
	assert.Equal(t, 5*time.Minute, s.Hooks.Timeout)
	assert.Equal(t, "2.13.0", s.Git.MinVersion)
	assert.False(t, s.Git.ContinueOnError)
	assert.False(t, s.Links.Relative)
	assert.True(t, filepath.IsAbs(s.Git.SSH.PrivateKey) || s.Git.SSH.PrivateKey == "~/.ssh/id_rsa")
}

func TestLoadSettings_Layering(t *testing.T) {
	root := t.TempDir()
	projectSettings := `
external_libs_dir = "third_party"

[hooks]
timeout = "30s"

[git]
continue_on_error = true
`
	require.NoError(t, os.WriteFile(filepath.Join(root, SettingsFile), []byte(projectSettings), 0644))

	t.Setenv("SUBBOOT_LINKS__RELATIVE", "true")
	t.Setenv("SUBBOOT_GIT__MIN_VERSION", "2.20.0")

	s, err := LoadSettings(root, map[string]interface{}{
		"manifest": "deps.yml",
	})
	require.NoError(t, err)

	// project file
	assert.Equal(t, "third_party", s.ExternalLibsDir)
	assert.Equal(t, 30*time.Second, s.Hooks.Timeout)
	assert.True(t, s.Git.ContinueOnError)
	// environment
	assert.True(t, s.Links.Relative)
	assert.Equal(t, "2.20.0", s.Git.MinVersion)
	// overrides
	assert.Equal(t, "deps.yml", s.Manifest)
	assert.Equal(t, filepath.Join(root, "deps.yml"), s.ManifestPath(root))
	// untouched defaults
	assert.Equal(t, "libs", s.LibsDir)
}

func TestLoadSettings_BrokenProjectFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, SettingsFile), []byte("hooks = [\n"), 0644))

	_, err := LoadSettings(root, nil)
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "git.ssh.private_key", envKey("SUBBOOT_GIT__SSH__PRIVATE_KEY"))
	assert.Equal(t, "libs_dir", envKey("SUBBOOT_LIBS_DIR"))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".ssh", "id_rsa"), ExpandHome("~/.ssh/id_rsa"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~other/x", ExpandHome("~other/x"))
	assert.Equal(t, "", ExpandHome(""))
}
