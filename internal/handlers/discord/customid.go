package discord

import (
	"strings"

	"github.com/pkg/errors"
)

// Button actions
const (
	ButtonStart = "start"
	ButtonPause = "pause"
	ButtonStop  = "stop"

	buttonPrefix = "pomodoro"
)

// Modal IDs
const (
	ModalPomodoro      = "pomodoroModal"
	ModalInputFocus    = "focusInput"
	ModalInputDuration = "durationInput"
)

// ButtonID identifies a panel button. The owner and session travel with the
// button so a click can be checked against the stored session.
type ButtonID struct {
	Action    string
	OwnerID   string
	SessionID string
}

// String encodes the button as a Discord custom ID
func (b ButtonID) String() string {
	return strings.Join([]string{buttonPrefix, b.Action, b.OwnerID, b.SessionID}, ":")
}

// IsPomodoroButton reports whether a custom ID belongs to a session panel
func IsPomodoroButton(customID string) bool {
	return strings.HasPrefix(customID, buttonPrefix+":")
}

// ParseButtonID decodes a custom ID built by ButtonID.String
func ParseButtonID(customID string) (ButtonID, error) {
	parts := strings.Split(customID, ":")
	if len(parts) != 4 || parts[0] != buttonPrefix {
		return ButtonID{}, errors.Errorf("malformed button ID %q", customID)
	}

	id := ButtonID{Action: parts[1], OwnerID: parts[2], SessionID: parts[3]}
	switch id.Action {
	case ButtonStart, ButtonPause, ButtonStop:
	default:
		return ButtonID{}, errors.Errorf("unknown button action %q", id.Action)
	}

	if id.OwnerID == "" {
		return ButtonID{}, errors.Errorf("button ID %q has no owner", customID)
	}

	return id, nil
}
