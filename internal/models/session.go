package models

import (
	"time"
)

// SessionState represents where a focus session is in its lifecycle
type SessionState string

const (
	// SessionStateInactive indicates a session was created but never started
	SessionStateInactive SessionState = "inactive"

	// SessionStateActive indicates the session timer is running
	SessionStateActive SessionState = "active"

	// SessionStatePaused indicates the session timer is on hold
	SessionStatePaused SessionState = "paused"

	// SessionStateStopped indicates the owner stopped the session. Stopped
	// sessions are removed right away and never persisted.
	SessionStateStopped SessionState = "stopped"
)

// IsActive returns true if the session timer is running
func (s SessionState) IsActive() bool {
	return s == SessionStateActive
}

// IsPaused returns true if the session is paused
func (s SessionState) IsPaused() bool {
	return s == SessionStatePaused
}

// IsInactive returns true if the session has not been started yet
func (s SessionState) IsInactive() bool {
	return s == SessionStateInactive
}

// Session is a user's pomodoro. There is at most one per user.
type Session struct {
	// ID is the unique identifier for this session
	ID string

	// UserID is the Discord user ID of the session owner
	UserID string

	// Focus is the free-text label the owner gave the session
	Focus string

	// DurationMinutes is the target length of the session
	DurationMinutes int

	// Elapsed is the time accumulated in previous active runs
	Elapsed time.Duration

	// StartedAt marks the start of the current active run. It is nil unless
	// the session is active.
	StartedAt *time.Time

	// State is the current lifecycle state
	State SessionState

	// ChannelID is the Discord channel holding the session panel
	ChannelID string

	// MessageID is the Discord message of the session panel
	MessageID string

	// CreatedAt is when the session was created
	CreatedAt time.Time
}

// Duration returns the target duration
func (s *Session) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// HasPanel returns true if the session is bound to a rendered message
func (s *Session) HasPanel() bool {
	return s.ChannelID != "" && s.MessageID != ""
}
