package rewards

import (
	"github.com/KirkDiggler/focusbot/internal/models"
	completionRepo "github.com/KirkDiggler/focusbot/internal/repositories/completion"
	pointsRepo "github.com/KirkDiggler/focusbot/internal/repositories/points"
)

const (
	// DefaultCompletionBonus is the payout for every CompletionsPerBonus completions
	DefaultCompletionBonus = 50

	// DefaultCompletionsPerBonus is how many completions earn one bonus
	DefaultCompletionsPerBonus = 2

	// DefaultLeaderboardSize is the number of users kept in the snapshot
	DefaultLeaderboardSize = 5
)

// Config holds configuration for the rewards service
type Config struct {
	// CompletionRepo stores the completed-session counters
	CompletionRepo completionRepo.Repository

	// PointsRepo stores balances and the leaderboard snapshot
	PointsRepo pointsRepo.Repository

	// CompletionBonus is the number of points paid out
	CompletionBonus int

	// CompletionsPerBonus is how many completions trigger a payout
	CompletionsPerBonus int

	// LeaderboardSize is how many users the snapshot holds
	LeaderboardSize int
}

// RecordCompletionInput contains parameters for recording a completed session
type RecordCompletionInput struct {
	UserID string
}

// RecordCompletionOutput contains the result of recording a completed session
type RecordCompletionOutput struct {
	// Bonus is the number of points awarded, 0 when no payout was due
	Bonus int

	// PendingCompletions is the counter after this completion
	PendingCompletions int

	// TotalPoints is the user's balance after the completion
	TotalPoints int

	// CompletedSessions is the user's lifetime completion count
	CompletedSessions int
}

// AddPointsInput contains parameters for a direct credit
type AddPointsInput struct {
	UserID string
	Amount int
}

// AddPointsOutput contains the balance after a direct credit
type AddPointsOutput struct {
	TotalPoints int
}

// GetPointsInput contains parameters for reading a balance
type GetPointsInput struct {
	UserID string
}

// GetPointsOutput contains a user's balance
type GetPointsOutput struct {
	Points            int
	CompletedSessions int
}

// RefreshLeaderboardOutput contains the recomputed snapshot
type RefreshLeaderboardOutput struct {
	Entries []*models.LeaderboardEntry
}

// GetLeaderboardOutput contains the persisted snapshot
type GetLeaderboardOutput struct {
	Entries []*models.LeaderboardEntry

	// Found is false when no snapshot has been written yet
	Found bool
}
