package types

// Dependency is one entry of the manifest: a submodule checked out under the
// external libs directory, with optional hooks and link actions.
type Dependency struct {
	Name       string
	PreInstall []string
	PreRemove  []string
	Actions    []LinkAction
}

// Hooks returns the hook list that applies to the given mode.
func (d Dependency) Hooks(mode Mode) []string {
	switch mode {
	case ModeClean:
		return d.PreRemove
	default:
		return d.PreInstall
	}
}

// Names returns the dependency names in manifest order.
func Names(deps []Dependency) []string {
	names := make([]string, 0, len(deps))
	for _, d := range deps {
		names = append(names, d.Name)
	}
	return names
}

// Filter returns the dependencies whose name equals only. An empty filter
// returns deps unchanged.
func Filter(deps []Dependency, only string) []Dependency {
	if only == "" {
		return deps
	}
	var out []Dependency
	for _, d := range deps {
		if d.Name == only {
			out = append(out, d)
		}
	}
	return out
}
