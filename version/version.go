// Package version provides the build information for cuda-archs.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is filled in at linking time with
	// -ldflags "-X github.com/leptonai/cuda-archs/version.Version=...".
	Version = "0.0.1+unknown"

	// Revision is the VCS revision, filled in at linking time.
	Revision = ""

	// GoVersion is Go tree's version.
	GoVersion = runtime.Version()
)

// String returns the version line printed by "cuda-archs --version".
func String() string {
	if Revision == "" {
		return fmt.Sprintf("%s (%s)", Version, GoVersion)
	}
	return fmt.Sprintf("%s (revision %s, %s)", Version, Revision, GoVersion)
}
