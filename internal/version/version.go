// Package version carries the build version and checks for newer releases.
package version

// Version is set at build time with -ldflags "-X .../internal/version.Version=v1.2.3"
var Version = "dev"

// String returns the version with a leading "v" when it is numeric
func String() string {
	if Version == "" || Version == "dev" {
		return "dev"
	}
	if Version[0] == 'v' {
		return Version
	}
	return "v" + Version
}
