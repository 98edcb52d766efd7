package version

// version is set at build time with -ldflags "-X github.com/mccartn3y/tetris-cli/pkg/version.version=v1.2.3".
var version = "dev"

// Get returns the version of the build.
func Get() string {
	return version
}
