package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonIDRoundTrip(t *testing.T) {
	id := ButtonID{Action: ButtonPause, OwnerID: "user-1", SessionID: "session-1"}

	assert.Equal(t, "pomodoro:pause:user-1:session-1", id.String())
	assert.True(t, IsPomodoroButton(id.String()))

	parsed, err := ParseButtonID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseButtonIDRejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"wrong prefix":    "timer:start:user-1:session-1",
		"missing session": "pomodoro:start:user-1",
		"unknown action":  "pomodoro:explode:user-1:session-1",
		"no owner":        "pomodoro:stop::session-1",
		"empty":           "",
	}

	for name, customID := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseButtonID(customID)
			assert.Error(t, err)
		})
	}
}

func TestIsPomodoroButton(t *testing.T) {
	assert.False(t, IsPomodoroButton("join_game"))
	assert.False(t, IsPomodoroButton("pomodoroModal"))
}
