package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesJSON(t *testing.T) {
	var buf bytes.Buffer

	logger, err := Setup(&Config{Level: "debug", Output: &buf})
	require.NoError(t, err)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	logger.Info().Str("user_id", "u1").Msg("hello")

	assert.Contains(t, buf.String(), `"user_id":"u1"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, err := Setup(&Config{Level: "loud"})
	require.Error(t, err)
}

func TestSetupFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	logger, err := Setup(&Config{Level: "warn", Output: &buf})
	require.NoError(t, err)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	logger.Info().Msg("quiet")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("loud")
	assert.Contains(t, buf.String(), "loud")
}
