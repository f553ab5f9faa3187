package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	appName = "zkbuild"

	// Directory, under the user's home, holding the installed toolchain.
	toolchainDirName = ".sp1"

	// File name of the C cross-compiler shipped with the toolchain.
	cCompilerName = "riscv32-unknown-elf-gcc"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the toolchain installation directory.
//
//	All platforms: ~/.sp1
func ToolchainHome() string {
	return filepath.Join(xdg.Home, toolchainDirName)
}

// Path to the C cross-compiler installed with the toolchain.
//
//	All platforms: ~/.sp1/bin/riscv32-unknown-elf-gcc
func CCompiler() string {
	return filepath.Join(ToolchainHome(), "bin", cCompilerName)
}

// Path to the user settings file.
//
//	Linux:   $XDG_CONFIG_HOME/zkbuild/config.yaml
//	macOS:   ~/Library/Application Support/zkbuild/config.yaml
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}
