package manifest

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SupportedVersions is the range of catalog format versions this build reads.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

var supported = mustConstraint(SupportedVersions)

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(fmt.Sprintf("invalid catalog version constraint %q: %v", c, err))
	}
	return constraint
}

// CheckVersion returns an error unless v is a semantic version inside
// SupportedVersions.
func CheckVersion(v string) error {
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid catalog version %q: %w", v, err)
	}
	if !supported.Check(ver) {
		return fmt.Errorf("catalog version %s is not supported (want %s)", ver, SupportedVersions)
	}
	return nil
}
