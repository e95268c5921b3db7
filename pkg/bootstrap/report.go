package bootstrap

import (
	"github.com/arthur-debert/subboot/pkg/links"
	"github.com/arthur-debert/subboot/pkg/types"
)

// HookFailure records a dependency whose hook list failed
type HookFailure struct {
	Dependency string
	Err        error
}

// Report summarizes a run
type Report struct {
	Mode    types.Mode
	DryRun  bool
	Results []links.Result
	Hooks   []HookFailure
	// NoActions lists dependencies that declared no link actions
	NoActions []string
	// LockFile is set when a lock file was written
	LockFile string
}

// Count returns how many results had the given outcome
func (r *Report) Count(outcome links.Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Invalid counts actions skipped because their type was not recognized
func (r *Report) Invalid() int {
	n := 0
	for _, res := range r.Results {
		if res.Action.Type == types.ActionUnknown {
			n++
		}
	}
	return n
}

// Failed reports whether any unit of work failed: a link operation, a hook
// list, or an unrecognized action type.
func (r *Report) Failed() bool {
	return r.Count(links.OutcomeFailed) > 0 || len(r.Hooks) > 0 || r.Invalid() > 0
}
