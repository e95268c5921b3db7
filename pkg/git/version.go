package git

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/arthur-debert/subboot/pkg/errors"
)

// ParseVersion extracts the version from `git --version` output such as
// "git version 2.39.3 (Apple Git-145)" or "git version 2.41.0.windows.1".
func ParseVersion(output string) (*semver.Version, error) {
	fields := strings.Fields(output)
	if len(fields) < 3 || fields[0] != "git" || fields[1] != "version" {
		return nil, errors.Newf(errors.ErrGitVersion, "unrecognized git version output: %q", strings.TrimSpace(output))
	}

	parts := strings.Split(fields[2], ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGitVersion, "invalid git version %q", fields[2])
	}
	return v, nil
}

// CheckMinimum fails when have is older than min. An empty min disables the check.
func CheckMinimum(have *semver.Version, min string) error {
	if min == "" {
		return nil
	}
	want, err := semver.NewVersion(strings.TrimPrefix(min, "v"))
	if err != nil {
		return errors.Wrapf(err, errors.ErrGitVersion, "invalid minimum git version %q", min)
	}
	if have.LessThan(want) {
		return errors.Newf(errors.ErrGitVersion, "git %s is older than the required %s", have, want).
			WithDetail("have", have.String()).
			WithDetail("want", want.String())
	}
	return nil
}
