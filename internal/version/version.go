// Package version holds build metadata stamped in with -ldflags -X.
package version

var (
	// Version is the release version of the observe tools
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)
