// Package build holds build-time version information injected via ldflags.
package build

// Version is the application version, set at build time.
var Version = "dev"

// Commit is the git commit hash, set at build time.
var Commit = "none"

// Date is the build date, set at build time.
var Date = "unknown"
