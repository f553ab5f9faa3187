package build

import (
	"fmt"
	"slices"
)

const (

	// Custom compilation target of the zkVM. Generated artifact paths depend on
	// it, so changing it breaks downstream consumers.
	Target = "riscv32im-succinct-zkvm-elf"

	// Container image tag used when none is given.
	DefaultTag = "v1.1.0"

	// Directory, relative to the workspace, that receives the copied ELF.
	DefaultOutputDir = "elf"

	// Rustup toolchain that provides the custom target.
	Toolchain = "succinct"

	// Subdirectory of the cargo target directory reserved for zkVM builds.
	// Keeps the nested cargo invocation from contending for the lock held by a
	// parent build (rust-lang/cargo#6412).
	helperTargetSubdir = "elf-compilation"

	// Extra segment appended to [helperTargetSubdir] for containerized builds.
	dockerSubdir = "docker"
)

// Options controlling a single program build.
//
// Options are constructed once and passed by value. Empty Binary and ELFName
// mean unset. An empty OutputDirectory means [DefaultOutputDir].
type Options struct {
	Docker            bool     // Build inside the toolchain container.
	Tag               string   // Container image tag. Ignored unless Docker is set.
	Features          []string // Cargo features, in order. Duplicates are passed through.
	NoDefaultFeatures bool     // Do not activate the `default` feature.
	IgnoreRustVersion bool     // Skip the `rust-version` check.
	Locked            bool     // Require Cargo.lock to remain unchanged.
	Binary            string   // Build only this binary.
	ELFName           string   // File name of the copied ELF.
	OutputDirectory   string   // Directory receiving the copied ELF.
}

// Returns the options used when the caller provides none.
func DefaultOptions() Options {
	return Options{
		Tag:             DefaultTag,
		OutputDirectory: DefaultOutputDir,
	}
}

// Returns a copy of the options that shares no memory with the receiver.
func (o Options) Clone() Options {
	o.Features = slices.Clone(o.Features)
	return o
}

// Checks that the options can produce a build.
func (o Options) Validate() error {
	if o.Docker && o.Tag == "" {
		return fmt.Errorf("%w: container tag is empty", ErrConfiguration)
	}
	return nil
}
