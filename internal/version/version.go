// Package version provides build-time version information.
package version

// Set at build time via -ldflags "-X worship-presenter/internal/version.Version=..."
var (
	// Version is the semantic version
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// String returns a single-line human-readable version string.
func String() string {
	return Version + " (" + GitCommit + ", " + BuildTime + ")"
}
