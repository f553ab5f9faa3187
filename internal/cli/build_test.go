package cli

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/cruciblehq/zkbuild/internal/build"
	"github.com/cruciblehq/zkbuild/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Parses args into a fresh build command using the given defaults.
func parseBuild(t *testing.T, s settings.Settings, args ...string) build.Options {
	t.Helper()
	var root struct {
		Build BuildCmd `cmd:""`
	}
	parser, err := kong.New(&root, vars(s), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)

	_, err = parser.Parse(append([]string{"build"}, args...))
	require.NoError(t, err)

	return root.Build.options()
}

func defaultSettings() settings.Settings {
	return settings.Settings{Tag: build.DefaultTag, OutputDirectory: build.DefaultOutputDir}
}

func TestBuildDefaults(t *testing.T) {
	opts := parseBuild(t, defaultSettings())

	assert.Empty(t, opts.Features)
	opts.Features = nil
	assert.Equal(t, build.DefaultOptions(), opts)
}

func TestBuildFlags(t *testing.T) {
	opts := parseBuild(t, defaultSettings(),
		"--docker",
		"--tag", "v2.0.0",
		"--features", "verify,alloc",
		"--features", "verify",
		"--no-default-features",
		"--ignore-rust-version",
		"--locked",
		"--bin", "fibonacci",
		"--elf-name", "fib-elf",
		"--out-dir", "out",
	)

	assert.Equal(t, build.Options{
		Docker:            true,
		Tag:               "v2.0.0",
		Features:          []string{"verify", "alloc", "verify"},
		NoDefaultFeatures: true,
		IgnoreRustVersion: true,
		Locked:            true,
		Binary:            "fibonacci",
		ELFName:           "fib-elf",
		OutputDirectory:   "out",
	}, opts)
}

func TestBuildLongFlagNames(t *testing.T) {
	opts := parseBuild(t, defaultSettings(), "--binary", "prover", "--output-directory", "/abs/elf")

	assert.Equal(t, "prover", opts.Binary)
	assert.Equal(t, "/abs/elf", opts.OutputDirectory)
}

func TestBuildSettingsDefaults(t *testing.T) {
	s := settings.Settings{Tag: "v9.9.9", OutputDirectory: "elfs", Docker: true}

	opts := parseBuild(t, s)
	assert.True(t, opts.Docker)
	assert.Equal(t, "v9.9.9", opts.Tag)
	assert.Equal(t, "elfs", opts.OutputDirectory)

	opts = parseBuild(t, s, "--tag", "v1.0.0")
	assert.Equal(t, "v1.0.0", opts.Tag)
}

func TestBuildProgramArgument(t *testing.T) {
	var root struct {
		Build BuildCmd `cmd:""`
	}
	parser, err := kong.New(&root, vars(defaultSettings()))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"build", "programs/fibonacci"})
	require.NoError(t, err)
	assert.Equal(t, "programs/fibonacci", root.Build.Program)
}
