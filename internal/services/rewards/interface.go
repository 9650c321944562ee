package rewards

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/focusbot/internal/services/rewards Service

// Service defines the interface for points and leaderboard operations
type Service interface {
	// RecordCompletion counts a completed session and pays the bonus every
	// CompletionsPerBonus completions
	RecordCompletion(ctx context.Context, input *RecordCompletionInput) (*RecordCompletionOutput, error)

	// AddPoints credits points directly to a user
	AddPoints(ctx context.Context, input *AddPointsInput) (*AddPointsOutput, error)

	// GetPoints returns a user's balance
	GetPoints(ctx context.Context, input *GetPointsInput) (*GetPointsOutput, error)

	// RefreshLeaderboard recomputes and persists the top-N snapshot
	RefreshLeaderboard(ctx context.Context) (*RefreshLeaderboardOutput, error)

	// GetLeaderboard reads the persisted snapshot
	GetLeaderboard(ctx context.Context) (*GetLeaderboardOutput, error)
}
