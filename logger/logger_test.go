package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel("WARN"))
	require.Equal(t, zerolog.ErrorLevel, ParseLevel("Error"))
	require.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewComponentField(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "svo", LevelWarn)

	l.Info().Msg("dropped")
	require.Zero(t, buf.Len())

	l.Warn().Msg("kept")
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "svo", line["component"])
	require.Equal(t, "kept", line["message"])
}

func TestNewLoggerFromEnv(t *testing.T) {
	t.Setenv(LevelEnv, "DEBUG")
	l := NewLogger("test")
	require.True(t, l.Debug().Enabled())

	t.Setenv(LevelEnv, "ERROR")
	l = NewLogger("test")
	require.False(t, l.Warn().Enabled())
}
