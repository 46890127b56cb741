package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/binfs/binfs/version.Version=v1.2.3".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// GetVersion returns the linker-set version, then the module version, then
// "development".
func GetVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "development"
}

// GetInfo returns the version with commit and build date, falling back to
// the VCS stamps recorded by the Go toolchain.
func GetInfo() Info {
	info := Info{Version: GetVersion(), Commit: Commit, Date: Date}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, setting := range bi.Settings {
		switch {
		case setting.Key == "vcs.revision" && (info.Commit == "unknown" || info.Commit == ""):
			info.Commit = setting.Value
		case setting.Key == "vcs.time" && (info.Date == "unknown" || info.Date == ""):
			info.Date = setting.Value
		}
	}
	return info
}

// String formats the version as "v1.2.3 (abc1234, built 2024-01-01)".
func (i Info) String() string {
	if i.Commit == "unknown" || len(i.Commit) <= 7 {
		return i.Version
	}
	if i.Date != "unknown" && i.Date != "" {
		return fmt.Sprintf("%s (%s, built %s)", i.Version, i.Commit[:7], i.Date)
	}
	return fmt.Sprintf("%s (%s)", i.Version, i.Commit[:7])
}

// UserAgent is sent with every HTTP request.
func UserAgent() string {
	return "binfs/" + GetVersion()
}
