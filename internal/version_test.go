package internal

import (
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Sets the linker variables for the duration of a test.
func setBuildInfo(t *testing.T, v, s, c string) {
	t.Helper()
	pv, ps, pc := version, stage, gitCommit
	version, stage, gitCommit = v, s, c
	t.Cleanup(func() { version, stage, gitCommit = pv, ps, pc })
}

func TestVersionStringLocal(t *testing.T) {
	setBuildInfo(t, "1.0.0", "", "abc")

	assert.True(t, IsLocal())
	assert.Equal(t, "(local)", VersionString())
	assert.Equal(t, "(undefined)", Stage())
}

func TestVersionString(t *testing.T) {
	platform := runtime.GOOS + "/" + runtime.GOARCH

	setBuildInfo(t, "V1.2.0", "Staging", "a1b2c3d")
	assert.Equal(t, "1.2.0", Version())
	assert.Equal(t, "1.2.0+staging a1b2c3d ["+platform+"]", VersionString())

	setBuildInfo(t, "v1.2.0", "main", "a1b2c3d")
	assert.Equal(t, "1.2.0 a1b2c3d ["+platform+"]", VersionString())
}

func TestLogLevel(t *testing.T) {
	t.Cleanup(func() {
		SetDebug(false)
		SetQuiet(false)
	})

	SetDebug(false)
	SetQuiet(false)
	assert.Equal(t, slog.LevelInfo, LogLevel())

	SetQuiet(true)
	assert.Equal(t, slog.LevelWarn, LogLevel())

	SetDebug(true)
	assert.Equal(t, slog.LevelDebug, LogLevel())
}

func TestParseFlag(t *testing.T) {
	assert.True(t, parseFlag("true"))
	assert.True(t, parseFlag("1"))
	assert.False(t, parseFlag("false"))
	assert.False(t, parseFlag("yes please"))
}
