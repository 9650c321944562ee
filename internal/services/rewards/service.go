package rewards

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/focusbot/internal/models"
	completionRepo "github.com/KirkDiggler/focusbot/internal/repositories/completion"
	pointsRepo "github.com/KirkDiggler/focusbot/internal/repositories/points"
)

// service implements the Service interface
type service struct {
	completionRepo      completionRepo.Repository
	pointsRepo          pointsRepo.Repository
	completionBonus     int
	completionsPerBonus int
	leaderboardSize     int
}

// New creates a new rewards service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.CompletionRepo == nil {
		return nil, ErrNilCompletionRepo
	}

	if cfg.PointsRepo == nil {
		return nil, ErrNilPointsRepo
	}

	svc := &service{
		completionRepo:      cfg.CompletionRepo,
		pointsRepo:          cfg.PointsRepo,
		completionBonus:     cfg.CompletionBonus,
		completionsPerBonus: cfg.CompletionsPerBonus,
		leaderboardSize:     cfg.LeaderboardSize,
	}

	if svc.completionBonus <= 0 {
		svc.completionBonus = DefaultCompletionBonus
	}
	if svc.completionsPerBonus <= 0 {
		svc.completionsPerBonus = DefaultCompletionsPerBonus
	}
	if svc.leaderboardSize <= 0 {
		svc.leaderboardSize = DefaultLeaderboardSize
	}

	return svc, nil
}

// RecordCompletion counts a completed session for the user
func (s *service) RecordCompletion(ctx context.Context, input *RecordCompletionInput) (*RecordCompletionOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidUserID
	}

	counter, err := s.completionRepo.UpdateCount(ctx, &completionRepo.UpdateCountInput{
		UserID: input.UserID,
		Update: func(current int) int {
			if current+1 >= s.completionsPerBonus {
				return 0
			}
			return current + 1
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update completion counter")
	}

	bonus := 0
	if counter.Previous+1 >= s.completionsPerBonus {
		bonus = s.completionBonus
	}

	balance, err := s.pointsRepo.UpdateBalance(ctx, &pointsRepo.UpdateBalanceInput{
		UserID: input.UserID,
		Update: func(b *models.PointBalance) error {
			b.Points += bonus
			b.CompletedSessions++
			return nil
		},
	})
	if err != nil {
		s.restoreCounter(ctx, input.UserID, counter)
		return nil, errors.Wrap(err, "failed to update point balance")
	}

	log.Info().
		Str("user_id", input.UserID).
		Int("bonus", bonus).
		Int("pending", counter.Count).
		Int("total_points", balance.Points).
		Msg("Recorded completed pomodoro")

	s.refreshAfterMutation(ctx)

	return &RecordCompletionOutput{
		Bonus:              bonus,
		PendingCompletions: counter.Count,
		TotalPoints:        balance.Points,
		CompletedSessions:  balance.CompletedSessions,
	}, nil
}

// restoreCounter undoes a counter update whose balance credit failed. A counter
// that has moved on since is left alone.
func (s *service) restoreCounter(ctx context.Context, userID string, counter *completionRepo.UpdateCountOutput) {
	_, err := s.completionRepo.UpdateCount(ctx, &completionRepo.UpdateCountInput{
		UserID: userID,
		Update: func(current int) int {
			if current != counter.Count {
				return current
			}
			return counter.Previous
		},
	})
	if err != nil {
		log.Error().Err(err).
			Str("user_id", userID).
			Int("previous", counter.Previous).
			Msg("Failed to restore completion counter")
	}
}

// AddPoints credits points to a user
func (s *service) AddPoints(ctx context.Context, input *AddPointsInput) (*AddPointsOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidUserID
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	balance, err := s.pointsRepo.UpdateBalance(ctx, &pointsRepo.UpdateBalanceInput{
		UserID: input.UserID,
		Update: func(b *models.PointBalance) error {
			b.Points += input.Amount
			return nil
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update point balance")
	}

	log.Debug().Str("user_id", input.UserID).Int("amount", input.Amount).Msg("Credited points")

	s.refreshAfterMutation(ctx)

	return &AddPointsOutput{TotalPoints: balance.Points}, nil
}

// GetPoints returns a user's balance, zero for unknown users
func (s *service) GetPoints(ctx context.Context, input *GetPointsInput) (*GetPointsOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidUserID
	}

	balance, err := s.pointsRepo.GetBalance(ctx, &pointsRepo.GetBalanceInput{UserID: input.UserID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get point balance")
	}

	return &GetPointsOutput{
		Points:            balance.Points,
		CompletedSessions: balance.CompletedSessions,
	}, nil
}

// RefreshLeaderboard rebuilds the snapshot from every balance. Ties are
// ordered by user ID.
func (s *service) RefreshLeaderboard(ctx context.Context) (*RefreshLeaderboardOutput, error) {
	balances, err := s.pointsRepo.ListBalances(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list balances")
	}

	entries := make([]*models.LeaderboardEntry, 0, len(balances.Balances))
	for _, balance := range balances.Balances {
		entries = append(entries, &models.LeaderboardEntry{UserID: balance.UserID, Points: balance.Points})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})

	if len(entries) > s.leaderboardSize {
		entries = entries[:s.leaderboardSize]
	}

	if err := s.pointsRepo.SaveLeaderboard(ctx, &pointsRepo.SaveLeaderboardInput{Entries: entries}); err != nil {
		return nil, errors.Wrap(err, "failed to save leaderboard")
	}

	return &RefreshLeaderboardOutput{Entries: entries}, nil
}

// GetLeaderboard reads the persisted snapshot
func (s *service) GetLeaderboard(ctx context.Context) (*GetLeaderboardOutput, error) {
	snapshot, err := s.pointsRepo.GetLeaderboard(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get leaderboard")
	}

	return &GetLeaderboardOutput{
		Entries: snapshot.Entries,
		Found:   snapshot.Found,
	}, nil
}

// refreshAfterMutation rebuilds the snapshot after a balance change. The
// balance is already committed, so a failure here is only logged.
func (s *service) refreshAfterMutation(ctx context.Context) {
	if _, err := s.RefreshLeaderboard(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to refresh leaderboard")
	}
}
