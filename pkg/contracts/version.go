package contracts

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// APIVersion is the version of the HTTP contracts in api/v1
const APIVersion = "v1"

// Set with -ldflags "-X histviz/pkg/contracts.Version=..." at release time.
var (
	Version   = "0.4.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo describes the running binary
type VersionInfo struct {
	Version    string `json:"version"`
	APIVersion string `json:"api_version"`
	BuildTime  string `json:"build_time,omitempty"`
	GitCommit  string `json:"git_commit,omitempty"`
	Modified   bool   `json:"modified,omitempty"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Info returns the version of this build. Commit and build time fall back to
// the VCS stamp the go toolchain embeds when ldflags did not set them.
func Info() VersionInfo {
	info := VersionInfo{
		Version:    Version,
		APIVersion: APIVersion,
		BuildTime:  known(BuildTime),
		GitCommit:  known(GitCommit),
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String renders the info on one line, e.g. for --version
func (v VersionInfo) String() string {
	commit := v.GitCommit
	if commit == "" {
		commit = "unknown"
	} else if len(commit) > 12 {
		commit = commit[:12]
	}
	if v.Modified {
		commit += "-dirty"
	}
	built := v.BuildTime
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("histviz v%s (api %s, commit %s, built %s, %s %s)",
		v.Version, v.APIVersion, commit, built, v.GoVersion, v.Platform)
}

func known(s string) string {
	if s == "unknown" {
		return ""
	}
	return s
}
