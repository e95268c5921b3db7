package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// SettingsFile is the optional per-project settings file
const SettingsFile = ".subboot.toml"

// EnvPrefix prefixes every settings environment variable
const EnvPrefix = "SUBBOOT_"

//go:embed embedded/defaults.toml
var defaultSettings []byte

// Settings holds subboot's own configuration
type Settings struct {
	Manifest        string `koanf:"manifest"`
	LibsDir         string `koanf:"libs_dir"`
	ExternalLibsDir string `koanf:"external_libs_dir"`
	Lockfile        string `koanf:"lockfile"`

	Hooks HookSettings `koanf:"hooks"`
	Links LinkSettings `koanf:"links"`
	Git   GitSettings  `koanf:"git"`
}

// HookSettings configures the hook runner
type HookSettings struct {
	Shell   string        `koanf:"shell"`
	Timeout time.Duration `koanf:"timeout"`
}

// LinkSettings configures the link manager
type LinkSettings struct {
	Relative bool `koanf:"relative"`
}

// GitSettings configures the submodule driver
type GitSettings struct {
	Binary          string      `koanf:"binary"`
	MinVersion      string      `koanf:"min_version"`
	ContinueOnError bool        `koanf:"continue_on_error"`
	SSH             SSHSettings `koanf:"ssh"`
}

// SSHSettings names the credentials offered to SSH remotes
type SSHSettings struct {
	Username   string `koanf:"username"`
	PublicKey  string `koanf:"public_key"`
	PrivateKey string `koanf:"private_key"`
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// DefaultSettings returns the embedded defaults only
func DefaultSettings() (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	return unmarshalSettings(k)
}

// LoadSettings layers defaults, the project settings file, the environment
// and overrides (dotted keys, e.g. "git.continue_on_error").
func LoadSettings(projectRoot string, overrides map[string]interface{}) (*Settings, error) {
	k := koanf.New(".")

	// 1. Load system defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load project settings if they exist
	path := filepath.Join(projectRoot, SettingsFile)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load settings from %s: %w", path, err)
		}
	}

	// 3. Load env vars
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Command line overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	return unmarshalSettings(k)
}

// envKey maps SUBBOOT_GIT__MIN_VERSION to git.min_version
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func unmarshalSettings(k *koanf.Koanf) (*Settings, error) {
	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	s.Git.SSH.PublicKey = ExpandHome(s.Git.SSH.PublicKey)
	s.Git.SSH.PrivateKey = ExpandHome(s.Git.SSH.PrivateKey)

	if s.Manifest == "" {
		s.Manifest = DefaultManifestFile
	}
	if s.Hooks.Shell == "" {
		s.Hooks.Shell = "/bin/sh"
	}
	if s.Git.Binary == "" {
		s.Git.Binary = "git"
	}

	return &s, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ManifestPath resolves the manifest path against the project root
func (s *Settings) ManifestPath(projectRoot string) string {
	if filepath.IsAbs(s.Manifest) {
		return s.Manifest
	}
	return filepath.Join(projectRoot, s.Manifest)
}
