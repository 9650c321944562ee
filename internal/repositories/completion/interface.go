package completion

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/focusbot/internal/repositories/completion Repository

// Repository defines the interface for completed-session counters
type Repository interface {
	// GetCount retrieves a user's counter, 0 for unknown users
	GetCount(ctx context.Context, input *GetCountInput) (*GetCountOutput, error)

	// UpdateCount atomically replaces a user's counter with the value returned by Update
	UpdateCount(ctx context.Context, input *UpdateCountInput) (*UpdateCountOutput, error)
}
