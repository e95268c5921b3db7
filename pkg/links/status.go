package links

import (
	"path/filepath"

	"github.com/arthur-debert/subboot/pkg/filesystem"
	"github.com/arthur-debert/subboot/pkg/types"
)

// State describes what is currently at an action's destination
type State string

const (
	// StateLinked: dst is a link to the expected source, which resolves
	StateLinked State = "linked"
	// StateForeign: dst is a link to something else
	StateForeign State = "foreign"
	// StateDangling: dst is a link whose target does not resolve
	StateDangling State = "dangling"
	// StateMissing: nothing at dst
	StateMissing State = "missing"
	// StateConflict: dst exists and is not a link
	StateConflict State = "conflict"
	// StateInvalid: the action type is not recognized
	StateInvalid State = "invalid"
)

// Status is the inspected state of one action
type Status struct {
	Dependency string
	Action     types.LinkAction
	Src        string
	Dst        string
	State      State
	// Target is the raw link target when dst is a link
	Target string
}

// Inspect reports the state of every action of dep without changing anything
func (m *Manager) Inspect(dep types.Dependency) []Status {
	statuses := make([]Status, 0, len(dep.Actions))
	for _, action := range dep.Actions {
		statuses = append(statuses, m.inspect(dep.Name, action))
	}
	return statuses
}

func (m *Manager) inspect(dep string, action types.LinkAction) Status {
	src, dst := m.Paths(dep, action)
	st := Status{Dependency: dep, Action: action, Src: src, Dst: dst}

	if action.Type == types.ActionUnknown {
		st.State = StateInvalid
		return st
	}

	if !filesystem.IsSymlink(m.fs, dst) {
		if filesystem.Exists(m.fs, dst) {
			st.State = StateConflict
		} else {
			st.State = StateMissing
		}
		return st
	}

	target, err := m.fs.Readlink(dst)
	if err != nil {
		st.State = StateConflict
		return st
	}
	st.Target = target

	resolved := target
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(dst), resolved)
	}

	_, statErr := m.fs.Stat(dst)
	switch {
	case filepath.Clean(resolved) != filepath.Clean(src):
		st.State = StateForeign
	case statErr != nil:
		st.State = StateDangling
	default:
		st.State = StateLinked
	}
	return st
}
