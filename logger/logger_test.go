package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logview/config"
)

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{DebugLevel, zerolog.DebugLevel},
		{InfoLevel, zerolog.InfoLevel},
		{WarnLevel, zerolog.WarnLevel},
		{ErrorLevel, zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, getLogLevel(tt.level))
		})
	}
}

func TestSetupWithOutput_JSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	cfg := config.Default()
	cfg.Log.Level = WarnLevel
	cfg.Log.Format = JSONFormat

	var buf bytes.Buffer
	logger := SetupWithOutput(cfg, &buf)

	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	log.Info().Msg("hidden")
	log.Warn().Str("endpoint", "http://source").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "http://source", line["endpoint"])
}

func TestSetupWithOutput_Console(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	cfg := config.Default()

	var buf bytes.Buffer
	SetupWithOutput(cfg, &buf)

	log.Info().Msg("hello console")

	assert.Contains(t, buf.String(), "hello console")
	assert.Contains(t, buf.String(), "INF")
}
