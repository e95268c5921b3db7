package links

import (
	"fmt"

	"github.com/arthur-debert/subboot/pkg/types"
)

// Outcome is what happened to one link action
type Outcome string

const (
	OutcomeLinked   Outcome = "linked"
	OutcomeUnlinked Outcome = "unlinked"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeFailed   Outcome = "failed"
)

// Result records the outcome of one link action
type Result struct {
	Dependency string
	Action     types.LinkAction
	// Src and Dst are the resolved absolute paths
	Src     string
	Dst     string
	Outcome Outcome
	// Reason explains a skip or failure in user facing terms
	Reason string
	Err    error
	// DryRun marks results of operations that were only logged
	DryRun bool
}

func (r Result) String() string {
	if r.Reason != "" {
		return fmt.Sprintf("%s %s: %s", r.Outcome, r.Dst, r.Reason)
	}
	return fmt.Sprintf("%s %s", r.Outcome, r.Dst)
}
