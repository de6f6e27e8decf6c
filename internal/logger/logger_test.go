package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestInitWritesToOutputAndFile(t *testing.T) {
	t.Cleanup(Close)

	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "lingora.log")
	require.NoError(t, Init(Config{Path: path, Level: "warn", Output: &out}))

	Info("hidden")
	Warn("shown", "key", "value")
	Close()

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "msg=shown key=value")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=shown")
}

func TestInitWithoutOutputDiscards(t *testing.T) {
	t.Cleanup(Close)

	require.NoError(t, Init(Config{Level: "debug"}))
	assert.NotPanics(t, func() { Debug("nowhere") })
}

func TestErrorLevel(t *testing.T) {
	t.Cleanup(Close)

	var out bytes.Buffer
	require.NoError(t, Init(Config{Level: "error", Output: &out}))

	Warn("quiet")
	Error("execution failed", "error", "disk on fire")

	assert.NotContains(t, out.String(), "quiet")
	assert.Contains(t, out.String(), `level=ERROR msg="execution failed" error="disk on fire"`)
}
