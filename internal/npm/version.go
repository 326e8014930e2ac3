package npm

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Range returns the dependency range written for v: a caret range for
// releases, the exact version for prereleases.
func Range(v *semver.Version) string {
	if v.Prerelease() != "" {
		return v.Original()
	}
	return "^" + v.String()
}

// Satisfies reports whether version falls inside the range constraint.
func Satisfies(constraint, version string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return c.Check(v), nil
}
