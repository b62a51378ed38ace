// Package version reports build information set through -ldflags
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at build time, e.g.
//
//	go build -ldflags "-X bennypowers.dev/abbrex/internal/version.Version=v0.1.0"
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	// GitDirty is "dirty" when the tree had uncommitted changes
	GitDirty = ""
)

// Info is a snapshot of the build variables
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Tag       string `json:"tag"`
	BuildTime string `json:"buildTime"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// Current returns the build information of the running binary
func Current() Info {
	info := Info{
		Commit:    GitCommit,
		Tag:       GitTag,
		BuildTime: BuildTime,
		Dirty:     GitDirty == "dirty",
	}
	info.Version = info.resolveVersion()
	return info
}

// resolveVersion prefers the ldflags version, then the module version,
// then one built from the git tag and commit.
func (i Info) resolveVersion() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	if i.Tag == "unknown" || i.Commit == "unknown" {
		return "dev"
	}
	v := i.Tag
	if short := i.shortCommit(); short != "" && !strings.HasSuffix(v, short) {
		v += "-" + short
	}
	if i.Dirty {
		v += "-dirty"
	}
	return v
}

func (i Info) shortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// String is the version with its commit when one is known
func (i Info) String() string {
	if i.Commit == "unknown" {
		return i.Version
	}
	return fmt.Sprintf("%s (commit: %s)", i.Version, i.Commit)
}
