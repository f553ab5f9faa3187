package internal

import (
	"log/slog"
	"strconv"
	"sync/atomic"
)

var (
	rawQuiet   = "false" // Linker default for quiet mode.
	rawDebug   = "false" // Linker default for debug mode.
	rawVerbose = "false" // Linker default for verbose mode.
)

var (
	quiet   atomic.Bool
	debug   atomic.Bool
	verbose atomic.Bool
)

func init() {
	quiet.Store(parseFlag(rawQuiet))
	debug.Store(parseFlag(rawDebug))
	verbose.Store(parseFlag(rawVerbose))
}

// Returns the boolean value of a linker flag, false if malformed.
func parseFlag(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

// Enables or disables quiet mode.
func SetQuiet(enabled bool) { quiet.Store(enabled) }

// Whether quiet mode is enabled.
func IsQuiet() bool { return quiet.Load() }

// Enables or disables debug mode.
func SetDebug(enabled bool) { debug.Store(enabled) }

// Whether debug mode is enabled.
func IsDebug() bool { return debug.Load() }

// Enables or disables verbose mode.
func SetVerbose(enabled bool) { verbose.Store(enabled) }

// Whether verbose mode is enabled.
func IsVerbose() bool { return verbose.Load() }

// Returns the log level implied by the current modes. Debug wins over quiet.
func LogLevel() slog.Level {
	switch {
	case IsDebug():
		return slog.LevelDebug
	case IsQuiet():
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
