// Package version holds the relkit version information.
// This is a separate package to avoid import cycles - it has no dependencies
// and can be safely imported from any package.
package version

import "fmt"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a single-line rendering of the build information.
func String() string {
	return fmt.Sprintf("relkit %s (commit %s, built %s)", Version, Commit, BuildDate)
}

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}
