package pomodoro

import (
	"context"

	"github.com/KirkDiggler/focusbot/internal/models"
)

// Repository defines the interface for session persistence
type Repository interface {
	// GetSession retrieves the session owned by a user
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// SaveSession persists a session, replacing any session the user had
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// UpdateSession atomically reads, mutates and writes a user's session
	UpdateSession(ctx context.Context, input *UpdateSessionInput) (*models.Session, error)

	// DeleteSession removes a user's session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error)

	// ListSessions retrieves every stored session
	ListSessions(ctx context.Context) (*ListSessionsOutput, error)
}
