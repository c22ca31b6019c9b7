// Package version holds the build version string.
package version

// Version is the current release of dvtm. Overridden at link time with
// -ldflags "-X dvtm/internal/version.Version=...".
var Version = "1.0.0"
