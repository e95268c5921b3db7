package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/arthur-debert/subboot/pkg/types"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultManifestFile is the manifest looked up in the project root
const DefaultManifestFile = "submodules.yml"

type manifestEntry struct {
	Name       string           `yaml:"name"`
	PreInstall stringList       `yaml:"pre-install"`
	PreRemove  stringList       `yaml:"pre-remove"`
	Actions    []manifestAction `yaml:"actions"`
	// Action is the singular form written by older manifests.
	Action *manifestAction `yaml:"action"`
}

type manifestAction struct {
	Type string `yaml:"type"`
	Src  string `yaml:"src"`
	Dst  string `yaml:"dst"`
}

// stringList accepts either a YAML sequence of strings or a single string.
type stringList []string

func (l *stringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = stringList{node.Value}
		return nil
	}
	var items []string
	if err := node.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}

// LoadManifest reads and parses the manifest at path.
// A missing or unreadable file yields ErrConfigLoad, a malformed document
// ErrConfigParse.
func LoadManifest(fsys afero.Fs, path string) ([]types.Dependency, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "manifest not found: %s", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read manifest %s", path).
			WithDetail("path", path)
	}

	deps, err := ParseManifest(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse manifest %s", path).
			WithDetail("path", path)
	}
	return deps, nil
}

// ParseManifest parses manifest bytes into dependencies, in document order.
// An empty document is an empty manifest.
func ParseManifest(data []byte) ([]types.Dependency, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []types.Dependency{}, nil
	}

	var entries []manifestEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	deps := make([]types.Dependency, 0, len(entries))
	for i, entry := range entries {
		dep, err := entry.toDependency()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

func (e manifestEntry) toDependency() (types.Dependency, error) {
	dep := types.Dependency{
		Name:       e.Name,
		PreInstall: []string(e.PreInstall),
		PreRemove:  []string(e.PreRemove),
	}

	raw := e.Actions
	if e.Action != nil {
		if len(raw) > 0 {
			return dep, fmt.Errorf("dependency %q declares both action and actions", e.Name)
		}
		raw = []manifestAction{*e.Action}
	}

	for _, a := range raw {
		dep.Actions = append(dep.Actions, types.LinkAction{
			Type:    types.ParseActionType(a.Type),
			RawType: a.Type,
			Src:     a.Src,
			Dst:     a.Dst,
		})
	}
	return dep, nil
}
