// Package version holds build-time version information, set via ldflags.
package version

var (
	// Version is the release version.
	Version = "dev"
	// GitCommit is the commit the binary was built from.
	GitCommit = "unknown"
	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)
