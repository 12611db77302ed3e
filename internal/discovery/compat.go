package discovery

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ModuleVersion is this module's own locator format version, widening
// the 3-bit header flags nibble into a declared semver value so it
// can be compared with the same library the rest of this codebase's
// version-gating code uses.
var ModuleVersion = semver.MustParse("1.0.0")

// SupportedLocatorVersions is the range of header versions this package
// will attach to. A version outside this range is refused outright rather
// than interpreted against a layout this code was never tested against.
var SupportedLocatorVersions = mustConstraint("~1")

func mustConstraint(raw string) *semver.Constraints {
	c, err := semver.NewConstraint(raw)
	if err != nil {
		panic(fmt.Sprintf("discovery: invalid built-in version constraint %q: %v", raw, err))
	}

	return c
}

// checkVersion reports an error if the 3-bit version nibble read from a
// discovered header falls outside SupportedLocatorVersions.
func checkVersion(headerVersion int) error {
	v, err := semver.NewVersion(fmt.Sprintf("%d.0.0", headerVersion))
	if err != nil {
		return fmt.Errorf("discovery: header version %d does not parse as semver: %w", headerVersion, err)
	}

	if !SupportedLocatorVersions.Check(v) {
		return fmt.Errorf("discovery: header version %d does not satisfy %s", headerVersion, SupportedLocatorVersions)
	}

	return nil
}
