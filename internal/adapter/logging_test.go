package adapter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestNewLogger_WritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")

	logger.Info("dropped")
	logger.Warn("kept", "movieID", 42)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, float64(42), rec["movieID"])
	assert.Equal(t, appName, rec["app"])
}

func TestSetupLogger_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "moodreel.log")
	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.Debug("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
