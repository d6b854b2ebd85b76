package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hejazi/internal/config"
	"hejazi/internal/logger"
)

func TestSetupWriter_JSON(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	l := logger.SetupWriter(config.LogConfig{Level: "info", Format: "json"}, buf)

	l.Debug().Msg("hidden")
	assert.Equal(t, 0, buf.Len())

	l.Info().Str("component", "test").Msg("hello")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "info", entry["level"])
}

func TestSetupWriter_BadLevelFallsBackToInfo(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	logger.SetupWriter(config.LogConfig{Level: "loud", Format: "console"}, buf)

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
