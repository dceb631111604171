// Package version provides information about the build version of the service.
package version

import "runtime"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Service is the default service name reported by the API
const Service = "xferlock-api"

// Info returns the build information for the API service.
func Info() BuildInfo { return For(Service) }

// For returns the build information under another binary name, e.g. the CLI.
// The version, commit, and date variables are set at build time using -ldflags:
//
//	-X 'xferlock/internal/core/version.version=v0.1.0'
//	-X 'xferlock/internal/core/version.commit=abcd'
//	-X 'xferlock/internal/core/version.date=2026-10-01'
func For(service string) BuildInfo {
	return BuildInfo{
		Service:   service,
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
}

// String renders a one line summary
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
