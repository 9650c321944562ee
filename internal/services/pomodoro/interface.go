package pomodoro

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/KirkDiggler/focusbot/internal/services/pomodoro Notifier
//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/focusbot/internal/services/pomodoro Service

// Service defines the interface for the focus session lifecycle
type Service interface {
	// CreateSession creates an inactive session for a user without one
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetPanel returns the current view of a user's session
	GetPanel(ctx context.Context, input *GetPanelInput) (*GetPanelOutput, error)

	// AttachPanel binds the rendered panel message to the session
	AttachPanel(ctx context.Context, input *AttachPanelInput) (*AttachPanelOutput, error)

	// Start starts or resumes a session
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// Pause pauses an active session, or resumes a paused one
	Pause(ctx context.Context, input *PauseInput) (*PauseOutput, error)

	// Stop ends a session without a reward
	Stop(ctx context.Context, input *StopInput) (*StopOutput, error)

	// Tick advances an active session and completes it once it reaches its target
	Tick(ctx context.Context, input *TickInput) (*TickOutput, error)

	// Expire drops a session whose interaction window lapsed
	Expire(ctx context.Context, input *ExpireInput) (*ExpireOutput, error)

	// Recover re-arms timers for persisted sessions after a restart
	Recover(ctx context.Context) (*RecoverOutput, error)

	// Shutdown cancels every timer
	Shutdown()
}

// Notifier delivers timer-driven session changes to the presentation layer
type Notifier interface {
	Notify(ctx context.Context, notification *Notification) error
}
