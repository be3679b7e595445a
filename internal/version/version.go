// Package version carries build metadata injected via -ldflags.
package version

var (
	// Version is the current gait.report release
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String formats the build metadata for -version output.
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
