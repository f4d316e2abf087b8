// Package buildinfo carries the version metadata stamped into release
// binaries via -ldflags; a plain `go build` reports the dev defaults.
package buildinfo

import "runtime"

var (
	// Version is the release tag, e.g. "v0.3.1".
	Version = "dev"
	// Commit is the short git hash the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// GoVersion reports the toolchain the binary was built with.
func GoVersion() string {
	return runtime.Version()
}
