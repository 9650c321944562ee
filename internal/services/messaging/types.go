package messaging

import (
	"github.com/KirkDiggler/focusbot/internal/common/random"
	"github.com/KirkDiggler/focusbot/internal/models"
)

// ErrorType identifies a user-facing failure
type ErrorType string

const (
	// ErrorTypeDMOnly is used when a DM-only command runs in a guild
	ErrorTypeDMOnly ErrorType = "dm_only"

	// ErrorTypeInvalidDuration is used for durations outside 1-120 minutes
	ErrorTypeInvalidDuration ErrorType = "invalid_duration"

	// ErrorTypeInvalidFocus is used when the focus is empty
	ErrorTypeInvalidFocus ErrorType = "invalid_focus"

	// ErrorTypeNotOwner is used when someone clicks another user's panel
	ErrorTypeNotOwner ErrorType = "not_owner"

	// ErrorTypeStalePanel is used when a panel no longer matches a live session
	ErrorTypeStalePanel ErrorType = "stale_panel"

	// ErrorTypeGeneric is used for every unexpected failure
	ErrorTypeGeneric ErrorType = "generic"
)

// PointsMessageType selects the points reply
type PointsMessageType string

const (
	// PointsMessageBalance reports the caller's balance
	PointsMessageBalance PointsMessageType = "balance"

	// PointsMessageCredit reports a direct credit
	PointsMessageCredit PointsMessageType = "credit"
)

// Config contains configuration for the messaging service
type Config struct {
	// Random picks message variants. A time-seeded source is used when nil.
	Random *random.Source
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	ErrorType ErrorType

	// Command is the slash command that failed, used by ErrorTypeDMOnly
	Command string
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
}

// GetStatusMessageInput contains parameters for the panel footer
type GetStatusMessageInput struct {
	State   models.SessionState
	Percent int
}

// GetStatusMessageOutput contains the panel footer
type GetStatusMessageOutput struct {
	Message string
}

// GetCompletionMessageInput contains parameters for the completion message
type GetCompletionMessageInput struct {
	Focus string
	Quote string

	// Bonus is the number of points paid for this completion
	Bonus int

	// PendingCompletions is how many completions count towards the next bonus
	PendingCompletions int

	// CompletionsPerBonus is how many completions pay a bonus
	CompletionsPerBonus int
}

// GetCompletionMessageOutput contains the completion message
type GetCompletionMessageOutput struct {
	Title   string
	Message string
}

// GetStopMessageInput contains parameters for the stop message
type GetStopMessageInput struct {
	Quote string
}

// GetStopMessageOutput contains the stop message
type GetStopMessageOutput struct {
	Title   string
	Message string
}

// GetPointsMessageInput contains parameters for a points reply
type GetPointsMessageInput struct {
	Type        PointsMessageType
	Amount      int
	TotalPoints int
}

// GetPointsMessageOutput contains a points reply
type GetPointsMessageOutput struct {
	Message string
}
