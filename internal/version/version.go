// Package version reports which primesvc build is running.
package version

import (
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X primesvc/internal/version.Version=1.2.0 -X primesvc/internal/version.Commit=<sha>".
// When Commit is left empty the VCS revision stamped by the Go toolchain is used.
var (
	Version   = "0.1.0"
	Commit    = ""
	BuildDate = ""
)

// BuildInfo identifies a build in /health, / and --version output.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
}

// Info collects the linker-set values, falling back to the module's embedded
// VCS settings.
func Info() BuildInfo {
	info := BuildInfo{Version: Version, Commit: Commit, BuildDate: BuildDate}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

// Short is the version plus an abbreviated commit, e.g. "0.1.0 (abc1234)".
func (b BuildInfo) Short() string {
	if len(b.Commit) > 7 {
		return b.Version + " (" + b.Commit[:7] + ")"
	}
	return b.Version
}

// String renders the multi-line form printed by `primesvc --version`.
func (b BuildInfo) String() string {
	var sb strings.Builder
	sb.WriteString("primesvc version " + b.Version)
	if b.Commit != "" {
		sb.WriteString("\ncommit: " + b.Commit)
	}
	if b.BuildDate != "" {
		sb.WriteString("\nbuilt: " + b.BuildDate)
	}
	if b.GoVersion != "" {
		sb.WriteString("\ngo: " + b.GoVersion)
	}
	return sb.String()
}
