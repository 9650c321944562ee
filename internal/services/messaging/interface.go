package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)

	// GetStatusMessage returns a short encouragement for the panel footer
	GetStatusMessage(ctx context.Context, input *GetStatusMessageInput) (*GetStatusMessageOutput, error)

	// GetCompletionMessage returns the text shown when a pomodoro completes
	GetCompletionMessage(ctx context.Context, input *GetCompletionMessageInput) (*GetCompletionMessageOutput, error)

	// GetStopMessage returns the text shown when a pomodoro is stopped
	GetStopMessage(ctx context.Context, input *GetStopMessageInput) (*GetStopMessageOutput, error)

	// GetPointsMessage returns the reply for a points-related command
	GetPointsMessage(ctx context.Context, input *GetPointsMessageInput) (*GetPointsMessageOutput, error)
}
