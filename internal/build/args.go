package build

import "strings"

const (

	// Environment variable selecting the rustup toolchain.
	EnvToolchain = "RUSTUP_TOOLCHAIN"

	// Environment variable carrying rustc flags in cargo's encoded form.
	EnvEncodedRustFlags = "CARGO_ENCODED_RUSTFLAGS"

	// Environment variable redirecting cargo's target directory.
	EnvTargetDir = "CARGO_TARGET_DIR"

	// Environment variable overriding the rustc binary. Removed from local
	// builds so build scripts do not fall back to the host compiler.
	EnvRustc = "RUSTC"

	// Separator cargo expects between entries of [EnvEncodedRustFlags].
	flagSeparator = "\x1f"
)

// Fixed rustc flags for the zkVM target.
var rustFlags = [...]string{
	"-C", "passes=loweratomic",
	"-C", "link-arg=-Ttext=0x00200800",
	"-C", "panic=abort",
}

// Cargo invocation derived from [Options].
type Invocation struct {
	Args []string          // Arguments following the cargo program name.
	Env  map[string]string // Environment overrides required by the target.
}

// Translates options into cargo arguments and environment overrides.
func Translate(opts Options) Invocation {
	return Invocation{
		Args: CargoArgs(opts),
		Env: map[string]string{
			EnvToolchain:        Toolchain,
			EnvEncodedRustFlags: EncodedRustFlags(),
		},
	}
}

// Returns the cargo arguments for a release build of the zkVM target.
//
// Features are comma-joined in the order given, without sorting or
// deduplication.
func CargoArgs(opts Options) []string {
	args := []string{"build", "--release", "--target", Target}

	if opts.IgnoreRustVersion {
		args = append(args, "--ignore-rust-version")
	}
	if opts.Binary != "" {
		args = append(args, "--bin", opts.Binary)
	}
	if len(opts.Features) > 0 {
		args = append(args, "--features", strings.Join(opts.Features, ","))
	}
	if opts.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}
	if opts.Locked {
		args = append(args, "--locked")
	}

	return args
}

// Returns the rustc flags for the zkVM target, joined with the 0x1F unit
// separator used by [EnvEncodedRustFlags].
func EncodedRustFlags() string {
	return strings.Join(rustFlags[:], flagSeparator)
}
