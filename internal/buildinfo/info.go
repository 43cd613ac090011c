// Package buildinfo carries version metadata stamped at build time.
package buildinfo

// Set via -ldflags at release build time; defaults identify a source build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
