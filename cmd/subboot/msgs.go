package subboot

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort     = "Bootstrap and tear down a project's submodule dependencies"
	MsgValidateShort = "Check the manifest for problems without changing anything"
	MsgValidateLong  = "Validate loads the manifest and reports unknown action types, empty or absolute paths, paths that leave their base directory and duplicate dependency names. It exits with status 1 when any error-level problem is found."
	MsgStatusShort   = "Show the state of every declared link"
	MsgStatusLong    = "Status inspects each link action's destination and reports whether it is linked, missing, dangling, pointing elsewhere or blocked by a regular file. Nothing is changed."
	MsgVersionShort  = "Print version information"

	// Flag descriptions
	MsgFlagClean     = "Remove the links created by a bootstrap run instead of creating them"
	MsgFlagSkipPre   = "Do not run pre-install/pre-remove hooks"
	MsgFlagOnly      = "Only process the named dependency"
	MsgFlagVerbose   = "Increase verbosity (-v DEBUG, -vv TRACE)"
	MsgFlagDryRun    = "Log what would be done without changing anything"
	MsgFlagStrict    = "Exit with status 2 when any hook or link action failed"
	MsgFlagWriteLock = "Record each submodule's commit in the lock file after bootstrapping"
	MsgFlagConfig    = "Manifest to read instead of ./submodules.yml"
	MsgFlagFormat    = "Output format: auto, term or text"
	MsgFlagLogFile   = "Log file path; '-' disables file logging"

	// Status messages
	MsgAbortBootstrap = "Aborting project bootstrapping"
	MsgAbortClean     = "Aborting project cleanup"
	MsgNoDependencies = "No dependencies to process."
	MsgUsageHint      = "Run 'subboot --help' for usage."
	MsgStaleLock      = "Manifest changed since the lock file was written; re-run with --write-lock"

	// Error messages
	MsgErrWorkingDir = "failed to determine the project root"
	MsgErrSettings   = "failed to load settings"
	MsgErrFormat     = "invalid --format value"
	MsgErrStrict     = "%d unit(s) of work failed"
	MsgErrInvalid    = "manifest has %d error(s)"
	MsgErrUsage      = "invalid usage"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimSpace(msgRootExampleRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
