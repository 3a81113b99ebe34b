package pkg

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: " WARN ", expected: slog.LevelWarn},
		{input: "warning", expected: slog.LevelWarn},
		{input: "ERROR", expected: slog.LevelError},
		{input: "", expected: slog.LevelInfo},
		{input: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNewLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&buf, "info")
	logger.Debug("не должно попасть в вывод")
	logger.Info("привет", "tg_user_id", int64(42))

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "привет", record["msg"])
	assert.EqualValues(t, 42, record["tg_user_id"])
}
