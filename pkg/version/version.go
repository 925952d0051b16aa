// Package version exposes the build version of the fleetshift binary.
package version

// Version is the release version, overridden at build time via
// -ldflags "-X github.com/fleetshift/fleetshift/pkg/version.Version=v1.2.3".
var Version = "dev" //nolint:gochecknoglobals // Set by the linker

// GetVersion returns the build version string.
func GetVersion() string {
	return Version
}
