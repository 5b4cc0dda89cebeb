package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histviz/internal/config"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "log line must be JSON: %s", line)
		out = append(out, entry)
	}
	return out
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "info", Output: "console"}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("histogram computed", slog.String("dataset", "sensors.xlsx"), slog.Int("bins", 5))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "histogram computed", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "sensors.xlsx", entries[0]["dataset"])
	assert.EqualValues(t, 5, entries[0]["bins"])
}

func TestNewLogger_Both(t *testing.T) {
	defer CloseLogFile()

	logFile := filepath.Join(t.TempDir(), "logs", "histviz.log")
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "debug", Output: "both", FilePath: logFile}, &buf)
	require.NoError(t, err)

	logger.Debug("written twice")
	require.NoError(t, CloseLogFile())

	assert.Contains(t, buf.String(), "written twice")
	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written twice")
}

func TestNewLogger_FileError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewLogger(config.LoggingConfig{Output: "file", FilePath: filepath.Join(blocker, "app.log")}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestTraceHandler_InjectsTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "info"}, &buf)
	require.NoError(t, err)

	ctx := WithTraceID(context.Background(), "trace-123")
	logger.With(slog.String("component", "test")).InfoContext(ctx, "with trace")
	logger.InfoContext(context.Background(), "without trace")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "trace-123", entries[0]["trace_id"])
	assert.Equal(t, "test", entries[0]["component"])
	assert.NotContains(t, entries[1], "trace_id")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestInitializeLogger_Once(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()
	previous := slog.Default()
	defer slog.SetDefault(previous)

	first, err := InitializeLogger(config.LoggingConfig{Level: "info"})
	require.NoError(t, err)
	second, err := InitializeLogger(config.LoggingConfig{Level: "debug"})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, GetLogger())
}

func TestTraceIDHelpers(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetTraceID(nil)) //nolint:staticcheck

	ctx := EnsureTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Len(t, id, 36)

	// an existing id is kept
	assert.Equal(t, id, GetTraceID(EnsureTraceID(ctx)))
	assert.NotEqual(t, GenerateTraceID(), GenerateTraceID())
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	WithComponent(base, "summary_service").Info("hello")
	assert.Contains(t, buf.String(), `"component":"summary_service"`)
	assert.NotNil(t, WithComponent(nil, "fallback"))
}
