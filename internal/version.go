// Package internal holds build-time information about the zkbuild binary.
//
// Values are injected with linker flags, for example:
//
//	go build -ldflags "-X github.com/cruciblehq/zkbuild/internal.version=1.2.0 \
//	    -X github.com/cruciblehq/zkbuild/internal.stage=main \
//	    -X github.com/cruciblehq/zkbuild/internal.gitCommit=a1b2c3d"
package internal

import (
	"fmt"
	"runtime"
	"strings"
)

// Program name, used for logging and help output.
const Name = "zkbuild"

const (
	undefined  = "(undefined)" // Placeholder for an unset variable.
	localBuild = "(local)"     // Version string of a non-pipeline build.
	mainBranch = "main"        // Stage omitted from version strings.
)

var (
	version   = "" // Release version (e.g., "1.2.0").
	stage     = "" // Development stage or branch (e.g., "staging").
	gitCommit = "" // Commit hash.
)

// Returns the release version without a leading "v", or "(undefined)".
func Version() string {
	v := strings.ToLower(strings.TrimSpace(version))
	if v == "" {
		return undefined
	}
	return strings.TrimPrefix(v, "v")
}

// Returns the lowercase development stage, or "(undefined)".
func Stage() string {
	if s := strings.TrimSpace(stage); s != "" {
		return strings.ToLower(s)
	}
	return undefined
}

// Returns the commit hash, or "(undefined)".
func GitCommit() string {
	if c := strings.TrimSpace(gitCommit); c != "" {
		return c
	}
	return undefined
}

// Whether the binary was built outside the release pipeline, which sets all
// of version, stage, and commit.
func IsLocal() bool {
	return strings.TrimSpace(version) == "" ||
		strings.TrimSpace(stage) == "" ||
		strings.TrimSpace(gitCommit) == ""
}

// Returns "<version>[+<stage>] <commit> [<os>/<arch>]", or "(local)" for
// local builds. The stage is omitted on the main branch.
func VersionString() string {
	if IsLocal() {
		return localBuild
	}

	suffix := ""
	if s := Stage(); s != mainBranch {
		suffix = "+" + s
	}

	return fmt.Sprintf("%s%s %s [%s/%s]", Version(), suffix, GitCommit(), runtime.GOOS, runtime.GOARCH)
}
