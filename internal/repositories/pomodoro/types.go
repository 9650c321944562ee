package pomodoro

import "github.com/KirkDiggler/focusbot/internal/models"

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	UserID string
}

// SaveSessionInput contains parameters for saving a session
type SaveSessionInput struct {
	Session *models.Session
}

// UpdateSessionInput contains parameters for updating a session in place
type UpdateSessionInput struct {
	UserID string

	// SessionID, when set, must match the stored session
	SessionID string

	// Update mutates the session. Returning an error aborts the write.
	Update func(session *models.Session) error
}

// DeleteSessionInput contains parameters for deleting a session
type DeleteSessionInput struct {
	UserID string

	// SessionID, when set, only deletes the session if it still matches
	SessionID string
}

// DeleteSessionOutput contains the result of deleting a session
type DeleteSessionOutput struct {
	// Deleted is false when there was nothing to delete
	Deleted bool
}

// ListSessionsOutput contains every stored session
type ListSessionsOutput struct {
	Sessions []*models.Session
}
