// Package version holds the CLI version, overridable at build time with
// -ldflags "-X github.com/smoothjs/smooth-cli/internal/version.Version=...".
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

var (
	// Version is the semantic version of the CLI
	Version = "0.0.1"

	// GitCommit is the commit the binary was built from
	GitCommit = "unknown"
)

// Parse returns Version as a semantic version.
func Parse() (*semver.Version, error) {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", Version, err)
	}
	return v, nil
}

// String returns the version shown by --version.
func String() string {
	v, err := Parse()
	if err != nil {
		return Version
	}
	if GitCommit == "unknown" || GitCommit == "" {
		return v.String()
	}
	return fmt.Sprintf("%s (%s)", v.String(), GitCommit)
}
