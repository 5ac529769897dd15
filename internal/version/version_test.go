package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GitCommit)
	assert.NotEmpty(t, info.BuildTime)
	assert.NotEmpty(t, info.GoVersion)
}

func TestResolve(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.24.5",
		Main:      debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name string
		v    string
		c    string
		bi   *debug.BuildInfo
		want Info
	}{
		{
			name: "no build info",
			v:    "dev",
			want: Info{Version: "dev", GitCommit: "unknown", BuildTime: "unknown", GoVersion: "unknown"},
		},
		{
			name: "from build info",
			v:    "dev",
			bi:   bi,
			want: Info{Version: "v0.3.0", GitCommit: "0123456", BuildTime: "2026-10-01T12:00:00Z", GoVersion: "go1.24.5", Modified: true},
		},
		{
			name: "linked values win",
			v:    "v1.0.0",
			c:    "fedcba9876",
			bi:   bi,
			want: Info{Version: "v1.0.0", GitCommit: "fedcba9", BuildTime: "2026-10-01T12:00:00Z", GoVersion: "go1.24.5", Modified: true},
		},
		{
			name: "devel main module",
			v:    "dev",
			bi:   &debug.BuildInfo{GoVersion: "go1.24.5", Main: debug.Module{Version: "(devel)"}},
			want: Info{Version: "dev", GitCommit: "unknown", BuildTime: "unknown", GoVersion: "go1.24.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolve(tt.v, tt.c, "", tt.bi))
		})
	}
}

func TestInfoStrings(t *testing.T) {
	info := Info{Version: "v1.2.0", GitCommit: "abc1234", BuildTime: "2026-01-01", GoVersion: "go1.24.0"}

	assert.Equal(t, "scerpa-config v1.2.0", info.String())

	detailed := info.Detailed()
	assert.True(t, strings.HasPrefix(detailed, "scerpa-config v1.2.0\n"))
	assert.Contains(t, detailed, "Git Commit: abc1234")
	assert.Contains(t, detailed, "Go Version: go1.24.0")

	info.Modified = true
	assert.Equal(t, "scerpa-config v1.2.0+dirty", info.String())
}
