// Package buildinfo carries the build identity stamped in via -ldflags.
// It shows up in the host window title and on the debug-info screen.
package buildinfo

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Short returns a compact identifier for titles and logs.
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		if len(Commit) > 10 {
			return Commit[:10]
		}
		return Commit
	}
	return "dev"
}
