package links

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/arthur-debert/subboot/pkg/filesystem"
	"github.com/arthur-debert/subboot/pkg/logging"
	"github.com/arthur-debert/subboot/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Manager
type Options struct {
	ProjectRoot     string
	ExternalLibsDir string
	// Relative makes created links relative to their own directory
	Relative bool
	DryRun   bool
	FS       filesystem.FS
	Logger   zerolog.Logger
}

// Manager applies and removes link actions for one project
type Manager struct {
	root        string
	externalDir string
	relative    bool
	dryRun      bool
	fs          filesystem.FS
	logger      zerolog.Logger
}

// NewManager creates a link manager
func NewManager(opts Options) *Manager {
	m := &Manager{
		root:        opts.ProjectRoot,
		externalDir: opts.ExternalLibsDir,
		relative:    opts.Relative,
		dryRun:      opts.DryRun,
		fs:          opts.FS,
		logger:      logging.Component(opts.Logger, "links"),
	}
	if m.externalDir == "" {
		m.externalDir = "external-libs"
	}
	if m.fs == nil {
		m.fs = filesystem.NewOS()
	}
	return m
}

// CheckoutDir returns the absolute checkout directory of a dependency
func (m *Manager) CheckoutDir(name string) string {
	return filepath.Join(m.root, m.externalDir, name)
}

// Paths resolves an action's absolute source and destination
func (m *Manager) Paths(dep string, action types.LinkAction) (src, dst string) {
	src = filepath.Join(m.CheckoutDir(dep), filepath.FromSlash(action.Src))
	dst = filepath.Join(m.root, filepath.FromSlash(action.Dst))
	return src, dst
}

// Process applies (bootstrap) or removes (clean) every action of dep
func (m *Manager) Process(mode types.Mode, dep types.Dependency) []Result {
	if mode == types.ModeClean {
		return m.Remove(dep)
	}
	return m.Apply(dep)
}

// Apply creates dep's links
func (m *Manager) Apply(dep types.Dependency) []Result {
	results := make([]Result, 0, len(dep.Actions))
	for _, action := range dep.Actions {
		results = append(results, m.apply(dep.Name, action))
	}
	return results
}

// Remove deletes dep's links. Sources are never touched.
func (m *Manager) Remove(dep types.Dependency) []Result {
	results := make([]Result, 0, len(dep.Actions))
	for _, action := range dep.Actions {
		results = append(results, m.remove(dep.Name, action))
	}
	return results
}

func (m *Manager) apply(dep string, action types.LinkAction) Result {
	src, dst := m.Paths(dep, action)
	res := Result{Dependency: dep, Action: action, Src: src, Dst: dst, DryRun: m.dryRun}
	log := m.logger.With().Str("dependency", dep).Str("type", action.TypeName()).Logger()

	switch action.Type {
	case types.ActionLinkFile:
		if filesystem.IsSymlink(m.fs, dst) {
			return m.skip(log, res, fmt.Sprintf("Path %q is already a link, will leave untouched", action.Dst), "")
		}
		if !filesystem.IsRegularFile(m.fs, src) {
			return m.skip(log, res, fmt.Sprintf("Source %q does not exist or is not a file, skipping", src), errors.ErrSourceMissing)
		}
		return m.link(log, res)

	case types.ActionLinkIncludeDir:
		if filesystem.IsSymlink(m.fs, dst) {
			return m.skip(log, res, fmt.Sprintf("Path %q is already a link, will leave untouched", action.Dst), "")
		}
		if !filesystem.IsDir(m.fs, src) {
			log.Debug().Str("src", src).Msg("Linking directory that does not exist yet")
		}
		return m.link(log, res)

	default: // types.ActionUnknown
		return m.unknown(log, res)
	}
}

func (m *Manager) remove(dep string, action types.LinkAction) Result {
	src, dst := m.Paths(dep, action)
	res := Result{Dependency: dep, Action: action, Src: src, Dst: dst, DryRun: m.dryRun}
	log := m.logger.With().Str("dependency", dep).Str("type", action.TypeName()).Logger()

	switch action.Type {
	case types.ActionLinkFile, types.ActionLinkIncludeDir:
		if !filesystem.IsSymlink(m.fs, dst) {
			return m.skip(log, res, fmt.Sprintf("Path %q is not a link, will leave untouched", action.Dst), errors.ErrLinkMissing)
		}
		return m.unlink(log, res)

	default: // types.ActionUnknown
		return m.unknown(log, res)
	}
}

func (m *Manager) link(log zerolog.Logger, res Result) Result {
	target := res.Src
	if m.relative {
		rel, err := filepath.Rel(filepath.Dir(res.Dst), res.Src)
		if err != nil {
			return m.fail(log, res, errors.Wrapf(err, errors.ErrLinkCreate, "cannot make %s relative to %s", res.Src, res.Dst))
		}
		target = rel
	}

	if m.dryRun {
		log.Info().Str("dst", res.Dst).Str("target", target).Msg("Would link")
		res.Outcome = OutcomeLinked
		return res
	}

	if err := m.fs.MkdirAll(filepath.Dir(res.Dst), 0755); err != nil {
		return m.fail(log, res, errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent of %s", res.Dst))
	}
	if err := m.fs.Symlink(target, res.Dst); err != nil {
		code := errors.ErrLinkCreate
		if os.IsExist(err) {
			code = errors.ErrLinkExists
		}
		return m.fail(log, res, errors.Wrapf(err, code, "failed to link %s", res.Dst))
	}

	log.Info().Str("dst", res.Dst).Str("target", target).Msg("Linked")
	res.Outcome = OutcomeLinked
	return res
}

func (m *Manager) unlink(log zerolog.Logger, res Result) Result {
	if m.dryRun {
		log.Info().Str("dst", res.Dst).Msg("Would remove link")
		res.Outcome = OutcomeUnlinked
		return res
	}

	if err := m.fs.Remove(res.Dst); err != nil {
		return m.fail(log, res, errors.Wrapf(err, errors.ErrLinkRemove, "failed to remove %s", res.Dst))
	}

	log.Info().Str("dst", res.Dst).Msg("Removed link")
	res.Outcome = OutcomeUnlinked
	return res
}

func (m *Manager) unknown(log zerolog.Logger, res Result) Result {
	msg := fmt.Sprintf("Could not parse type %q, valid options are %v",
		res.Action.RawType, types.ValidActionTypes())
	log.Warn().Msg(msg)
	res.Outcome = OutcomeSkipped
	res.Reason = msg
	res.Err = errors.New(errors.ErrActionUnknown, msg).WithDetail("type", res.Action.RawType)
	return res
}

// skip records a skipped action. A non-empty code attaches an error so
// callers can tell why; an already present link carries none.
func (m *Manager) skip(log zerolog.Logger, res Result, reason string, code errors.ErrorCode) Result {
	log.Warn().Msg(reason)
	res.Outcome = OutcomeSkipped
	res.Reason = reason
	if code != "" {
		res.Err = errors.New(code, reason).WithDetail("dst", res.Dst)
	}
	return res
}

func (m *Manager) fail(log zerolog.Logger, res Result, err error) Result {
	log.Error().Err(err).Str("dst", res.Dst).Msg("Link action failed")
	res.Outcome = OutcomeFailed
	res.Reason = err.Error()
	res.Err = err
	return res
}
