package pomodoro

import "github.com/pkg/errors"

// PomodoroError is a custom error type for session errors
type PomodoroError string

// Error implements the error interface
func (e PomodoroError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidFocus      PomodoroError = "focus cannot be empty"
	ErrInvalidDuration   PomodoroError = "duration must be between 1 and 120 minutes"
	ErrNotSessionOwner   PomodoroError = "only the owner can control this session"
	ErrSessionNotFound   PomodoroError = "session not found"
	ErrSessionExists     PomodoroError = "user already has a session"
	ErrInvalidTransition PomodoroError = "invalid session state for this action"
	ErrStalePanel        PomodoroError = "panel belongs to a session that no longer exists"
	ErrNilConfig         PomodoroError = "config cannot be nil"
	ErrNilRepository     PomodoroError = "session repository cannot be nil"
	ErrNilRewards        PomodoroError = "rewards service cannot be nil"
	ErrNilQuotes         PomodoroError = "quote provider cannot be nil"
	ErrNilNotifier       PomodoroError = "notifier cannot be nil"
	ErrNilScheduler      PomodoroError = "scheduler cannot be nil"
	ErrNilClock          PomodoroError = "clock cannot be nil"
	ErrNilUUIDGenerator  PomodoroError = "UUID generator cannot be nil"
)

// IsValidationError reports whether err was caused by bad user input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidFocus) || errors.Is(err, ErrInvalidDuration)
}

// IsAuthorizationError reports whether err was caused by a non-owner action
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrNotSessionOwner)
}
