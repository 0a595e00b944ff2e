// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info returns the version line printed by mlang --version.
func Info() string {
	return fmt.Sprintf("mlang version %s (commit: %s, built: %s)", Version, Commit, Date)
}
