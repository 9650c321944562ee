package points

import (
	"context"

	"github.com/KirkDiggler/focusbot/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/focusbot/internal/repositories/points Repository

// Repository defines the interface for point balances and the leaderboard snapshot
type Repository interface {
	// GetBalance retrieves a user's balance, zero for unknown users
	GetBalance(ctx context.Context, input *GetBalanceInput) (*models.PointBalance, error)

	// UpdateBalance atomically reads, mutates and writes a user's balance
	UpdateBalance(ctx context.Context, input *UpdateBalanceInput) (*models.PointBalance, error)

	// ListBalances retrieves every stored balance
	ListBalances(ctx context.Context) (*ListBalancesOutput, error)

	// SaveLeaderboard replaces the leaderboard snapshot
	SaveLeaderboard(ctx context.Context, input *SaveLeaderboardInput) error

	// GetLeaderboard retrieves the leaderboard snapshot
	GetLeaderboard(ctx context.Context) (*GetLeaderboardOutput, error)
}
