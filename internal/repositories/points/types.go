package points

import "github.com/KirkDiggler/focusbot/internal/models"

// GetBalanceInput contains parameters for retrieving a balance
type GetBalanceInput struct {
	UserID string
}

// UpdateBalanceInput contains parameters for updating a balance
type UpdateBalanceInput struct {
	UserID string

	// Update mutates the balance. Returning an error aborts the write.
	Update func(balance *models.PointBalance) error
}

// ListBalancesOutput contains every stored balance
type ListBalancesOutput struct {
	Balances []*models.PointBalance
}

// SaveLeaderboardInput contains the snapshot to persist
type SaveLeaderboardInput struct {
	Entries []*models.LeaderboardEntry
}

// GetLeaderboardOutput contains the persisted snapshot
type GetLeaderboardOutput struct {
	Entries []*models.LeaderboardEntry

	// Found is false when no snapshot has been written yet
	Found bool
}
