package pomodoro

import (
	"time"

	"github.com/KirkDiggler/focusbot/internal/common/clock"
	"github.com/KirkDiggler/focusbot/internal/common/uuid"
	"github.com/KirkDiggler/focusbot/internal/models"
	"github.com/KirkDiggler/focusbot/internal/progress"
	pomodoroRepo "github.com/KirkDiggler/focusbot/internal/repositories/pomodoro"
	"github.com/KirkDiggler/focusbot/internal/scheduler"
	"github.com/KirkDiggler/focusbot/internal/services/quote"
	"github.com/KirkDiggler/focusbot/internal/services/rewards"
)

const (
	// MinDurationMinutes is the shortest allowed session
	MinDurationMinutes = 1

	// MaxDurationMinutes is the longest allowed session
	MaxDurationMinutes = 120

	// DefaultRefreshInterval is how often an active session is advanced
	DefaultRefreshInterval = 30 * time.Second

	// DefaultInteractionWindow is how long a session survives without user interaction
	DefaultInteractionWindow = 24 * time.Hour
)

// Event identifies what happened to a session
type Event string

const (
	// EventUpdated is sent when a session's progress or state changed
	EventUpdated Event = "updated"

	// EventCompleted is sent when a session reached its target
	EventCompleted Event = "completed"

	// EventStopped is sent when the owner stopped a session
	EventStopped Event = "stopped"
)

// Notification carries everything needed to render a session
type Notification struct {
	Event    Event
	Session  *models.Session
	Progress progress.Progress

	// Quote is the formatted motivational quote
	Quote string

	// Reward is set for EventCompleted when the ledger recorded the completion
	Reward *rewards.RecordCompletionOutput
}

// Config holds configuration for the pomodoro service
type Config struct {
	Repository    pomodoroRepo.Repository
	Rewards       rewards.Service
	Quotes        quote.Provider
	Notifier      Notifier
	Scheduler     scheduler.Scheduler
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// RefreshInterval defaults to DefaultRefreshInterval
	RefreshInterval time.Duration

	// InteractionWindow defaults to DefaultInteractionWindow
	InteractionWindow time.Duration
}

// CreateSessionInput contains parameters for creating a session
type CreateSessionInput struct {
	UserID          string
	Focus           string
	DurationMinutes int

	// ChannelID is where the panel will be posted, if known
	ChannelID string
}

// CreateSessionOutput contains the created session
type CreateSessionOutput struct {
	Notification *Notification
}

// GetPanelInput contains parameters for reading a session
type GetPanelInput struct {
	UserID string
}

// GetPanelOutput contains the current view of a session
type GetPanelOutput struct {
	Notification *Notification
}

// AttachPanelInput contains parameters for binding a panel message
type AttachPanelInput struct {
	UserID    string
	SessionID string
	ChannelID string
	MessageID string
}

// AttachPanelOutput contains the rebound session
type AttachPanelOutput struct {
	Session *models.Session
}

// StartInput contains parameters for starting a session
type StartInput struct {
	// ActorID is the user who pressed the button
	ActorID string

	// OwnerID is the user the panel belongs to
	OwnerID string

	// SessionID is the session the panel was rendered for
	SessionID string
}

// StartOutput contains the session after starting
type StartOutput struct {
	Notification *Notification
}

// PauseInput contains parameters for pausing a session
type PauseInput struct {
	ActorID   string
	OwnerID   string
	SessionID string
}

// PauseOutput contains the session after pausing or resuming
type PauseOutput struct {
	Notification *Notification

	// Resumed is true when the call resumed a paused session
	Resumed bool
}

// StopInput contains parameters for stopping a session
type StopInput struct {
	ActorID   string
	OwnerID   string
	SessionID string
}

// StopOutput contains the stopped session
type StopOutput struct {
	Notification *Notification
}

// TickInput contains parameters for a refresh tick
type TickInput struct {
	UserID string
}

// TickOutput contains the result of a refresh tick
type TickOutput struct {
	// Notification is nil when the tick had nothing to do
	Notification *Notification
}

// ExpireInput contains parameters for expiring a session
type ExpireInput struct {
	UserID string
}

// ExpireOutput contains the result of expiring a session
type ExpireOutput struct {
	Deleted bool
}

// RecoverOutput contains the result of re-arming timers
type RecoverOutput struct {
	// Sessions is the number of sessions found
	Sessions int

	// Resumed is the number of active sessions whose refresh timer was re-armed
	Resumed int
}
