package types

// Mode selects between establishing and tearing down dependencies
type Mode int

const (
	// ModeBootstrap fetches submodules and creates links (the default)
	ModeBootstrap Mode = iota
	// ModeClean removes previously created links
	ModeClean
)

func (m Mode) String() string {
	if m == ModeClean {
		return "clean"
	}
	return "bootstrap"
}

// RunOptions is derived once from the command line and read-only afterwards.
type RunOptions struct {
	Mode           Mode
	SkipHooks      bool
	OnlyDependency string

	// DryRun logs every mutation instead of performing it.
	DryRun bool
	// Strict turns any failed unit of work into a failed run.
	Strict bool
	// WriteLock records the checked-out submodule revisions after bootstrap.
	WriteLock bool
}
