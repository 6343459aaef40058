package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "debug", "")
	log.Debug("weather fetched", "city", "Paris")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "outfit-advisor", line["service"])
	require.Equal(t, "Paris", line["city"])
	require.Equal(t, "weather fetched", line["msg"])
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	require.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
