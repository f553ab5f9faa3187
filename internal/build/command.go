package build

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cruciblehq/zkbuild/internal/metadata"
	"github.com/cruciblehq/zkbuild/internal/paths"
)

// Environment variable naming the C compiler cc-rs uses for the zkVM target.
const EnvCCompiler = "CC_riscv32im_succinct_zkvm_elf"

// Returns the default C cross-compiler path. Replaced in tests.
var defaultCCompiler = paths.CCompiler

// Snapshot of environment variables, keyed by name.
//
// The build reads the caller's environment only through an Env, so commands
// can be constructed without touching the process environment.
type Env map[string]string

// Parses "key=value" entries, as returned by [os.Environ], into an [Env].
// Malformed entries are skipped. Later entries win.
func ParseEnv(environ []string) Env {
	env := make(Env, len(environ))
	for _, entry := range environ {
		if k, v, ok := strings.Cut(entry, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Fully configured build command, not yet started.
type Command struct {
	Dir   string            // Working directory.
	Path  string            // Program to run, looked up in PATH if not absolute.
	Args  []string          // Arguments following the program name.
	Env   map[string]string // Variables set on top of the inherited environment.
	Unset []string          // Variables removed from the inherited environment.
}

// Merges the command's overrides and removals on top of a base environment.
//
// Base entries keep their order; new variables follow, sorted by name. The
// base slice is not modified.
func (c *Command) Environ(base []string) []string {
	removed := make(map[string]bool, len(c.Unset))
	for _, k := range c.Unset {
		removed[k] = true
	}

	seen := make(map[string]bool, len(c.Env))
	result := make([]string, 0, len(base)+len(c.Env))
	for _, entry := range base {
		k, _, ok := strings.Cut(entry, "=")
		if !ok || removed[k] || seen[k] {
			continue
		}
		seen[k] = true
		if v, ok := c.Env[k]; ok {
			result = append(result, k+"="+v)
			continue
		}
		result = append(result, entry)
	}

	for _, k := range slices.Sorted(maps.Keys(c.Env)) {
		if !seen[k] && !removed[k] {
			result = append(result, k+"="+c.Env[k])
		}
	}

	return result
}

// Produces build commands that run inside a container.
type Backend interface {
	Command(opts Options, programDir string, meta *metadata.Metadata) (*Command, error)
}

// Builds the command that compiles the program.
//
// When opts.Docker is set the command comes from container, and its errors
// are returned unchanged. Otherwise a local cargo invocation is produced
// with the target directory redirected to a dedicated subdirectory, so the
// nested build never contends with, or corrupts, the caller's own build.
func NewCommand(opts Options, programDir string, meta *metadata.Metadata, container Backend, env Env) (*Command, error) {
	if opts.Docker {
		if container == nil {
			return nil, fmt.Errorf("%w: no container backend configured", ErrConfiguration)
		}
		return container.Command(opts, programDir, meta)
	}

	if meta == nil {
		return nil, fmt.Errorf("%w: package metadata is missing", ErrConfiguration)
	}

	dir, err := CanonicalDir(programDir)
	if err != nil {
		return nil, err
	}

	inv := Translate(opts)
	cmd := &Command{
		Dir:   dir,
		Path:  "cargo",
		Args:  inv.Args,
		Env:   inv.Env,
		Unset: []string{EnvRustc},
	}
	cmd.Env[EnvTargetDir] = HelperTargetDir(meta.TargetDirectory, false)

	if _, ok := env[EnvCCompiler]; !ok {
		if cc := defaultCCompiler(); fileExists(cc) {
			cmd.Env[EnvCCompiler] = cc
		}
	}

	slog.Debug("local build command",
		"dir", cmd.Dir,
		"args", cmd.Args,
		"target_dir", cmd.Env[EnvTargetDir],
	)

	return cmd, nil
}

// Returns the absolute, symlink-free form of a program directory.
func CanonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: program directory %q: %w", ErrConfiguration, dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: program directory %q: %w", ErrConfiguration, dir, err)
	}
	return resolved, nil
}

// Whether path names an existing file.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
