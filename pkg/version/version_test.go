package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestGetVersionInfo(t *testing.T) {
	is := is.New(t)

	info := GetVersionInfo()
	is.True(strings.HasPrefix(info, "kutils version dev")) // default version
	is.True(strings.Contains(info, "commit: unknown"))
	is.True(strings.Contains(info, runtime.Version()))
}

func TestGetVersionInfoLinkerValues(t *testing.T) {
	is := is.New(t)

	origVersion, origCommit, origBuild := Version, GitCommit, BuildTime
	defer func() { Version, GitCommit, BuildTime = origVersion, origCommit, origBuild }()

	Version, GitCommit, BuildTime = "v0.3.0", "abc123", "2026-01-01T00:00:00Z"

	is.Equal(GetVersionInfo(),
		"kutils version v0.3.0 (commit: abc123, built: 2026-01-01T00:00:00Z, go: "+runtime.Version()+")")
}
