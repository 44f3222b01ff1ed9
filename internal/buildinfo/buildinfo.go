// Package buildinfo holds build-time variables injected via ldflags.
package buildinfo

import "fmt"

// Populated by -ldflags at build time; defaults used for local dev.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Summary renders the version line printed by `notes version`.
func Summary() string {
	return fmt.Sprintf("notes %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
