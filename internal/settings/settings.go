// Package settings loads user defaults for build options.
//
// Defaults come from an optional YAML file (see paths.ConfigFile) and from
// ZKBUILD_* environment variables, the latter taking precedence. Command
// line flags override both.
package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/cruciblehq/zkbuild/internal/build"
	"github.com/spf13/viper"
)

// Prefix of environment variables read by [Load].
const envPrefix = "ZKBUILD"

// User defaults for build options.
type Settings struct {
	Tag             string `mapstructure:"tag"`              // Default container image tag.
	OutputDirectory string `mapstructure:"output_directory"` // Default output directory.
	Docker          bool   `mapstructure:"docker"`           // Build in a container by default.
}

// Loads settings from the file at path and the environment.
//
// A missing file is not an error. An empty path skips the file.
func Load(path string) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("tag", build.DefaultTag)
	v.SetDefault("output_directory", build.DefaultOutputDir)
	v.SetDefault("docker", false)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}

	return s, nil
}
