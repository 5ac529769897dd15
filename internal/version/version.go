// Package version reports which build of scerpa-config is running.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Program is the name printed in front of every version string
const Program = "scerpa-config"

// Overridden at link time, e.g.
// -ldflags "-X github.com/scerpa/scerpa-config/internal/version.version=v1.0.0"
var (
	version   = "dev"
	gitCommit = ""
	buildTime = ""
)

const unknown = "unknown"

// Info describes one build
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Modified  bool
}

// Get returns the linked-in values, completed from the module build info
// when the binary came from go install or go build.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(version, gitCommit, buildTime, bi)
}

func resolve(v, commit, built string, bi *debug.BuildInfo) Info {
	info := Info{Version: v, GitCommit: commit, BuildTime: built, GoVersion: unknown}
	if bi != nil {
		info.GoVersion = bi.GoVersion
		if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
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
	}

	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	if info.GitCommit == "" {
		info.GitCommit = unknown
	}
	if info.BuildTime == "" {
		info.BuildTime = unknown
	}
	return info
}

// String returns "scerpa-config <version>"
func (i Info) String() string {
	s := Program + " " + i.Version
	if i.Modified {
		s += "+dirty"
	}
	return s
}

// Detailed lists every field on its own line
func (i Info) Detailed() string {
	var b strings.Builder
	b.WriteString(i.String() + "\n")
	fmt.Fprintf(&b, "Git Commit: %s\n", i.GitCommit)
	fmt.Fprintf(&b, "Build Time: %s\n", i.BuildTime)
	fmt.Fprintf(&b, "Go Version: %s", i.GoVersion)
	return b.String()
}
