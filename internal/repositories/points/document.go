package points

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/focusbot/internal/models"
	"github.com/KirkDiggler/focusbot/internal/repositories/document"
)

const (
	// BalancesKey is the document holding every user's balance
	BalancesKey = "pontos"

	// LeaderboardKey is the document holding the leaderboard snapshot
	LeaderboardKey = "rankuser"
)

type balanceRecord struct {
	Points            int `json:"pontos"`
	CompletedSessions int `json:"pomodorosConcluidos"`
}

type leaderboardRecord struct {
	UserID string `json:"userId"`
	Points int    `json:"pontos"`
}

// Config holds configuration for the points repository
type Config struct {
	Store document.Store
}

type documentRepository struct {
	store document.Store
}

// NewDocument creates a new points repository
func NewDocument(cfg *Config) (*documentRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Store == nil {
		return nil, errors.New("document store cannot be nil")
	}

	return &documentRepository{store: cfg.Store}, nil
}

// GetBalance retrieves a user's balance
func (r *documentRepository) GetBalance(ctx context.Context, input *GetBalanceInput) (*models.PointBalance, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	balances := r.store.Load(ctx, BalancesKey)
	return decodeBalance(input.UserID, balances[input.UserID]), nil
}

// UpdateBalance applies input.Update to a user's balance
func (r *documentRepository) UpdateBalance(ctx context.Context, input *UpdateBalanceInput) (*models.PointBalance, error) {
	if input == nil || input.UserID == "" || input.Update == nil {
		return nil, errors.New("input, user ID and update cannot be empty")
	}

	var updated *models.PointBalance
	err := r.store.Update(ctx, BalancesKey, func(m document.Mapping) error {
		balance := decodeBalance(input.UserID, m[input.UserID])
		if err := input.Update(balance); err != nil {
			return err
		}
		balance.UserID = input.UserID

		raw, err := json.Marshal(balanceRecord{
			Points:            balance.Points,
			CompletedSessions: balance.CompletedSessions,
		})
		if err != nil {
			return errors.Wrap(err, "failed to marshal balance")
		}

		m[input.UserID] = raw
		updated = balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ListBalances returns every balance ordered by user ID
func (r *documentRepository) ListBalances(ctx context.Context) (*ListBalancesOutput, error) {
	balances := r.store.Load(ctx, BalancesKey)

	userIDs := make([]string, 0, len(balances))
	for userID := range balances {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	output := &ListBalancesOutput{Balances: make([]*models.PointBalance, 0, len(userIDs))}
	for _, userID := range userIDs {
		output.Balances = append(output.Balances, decodeBalance(userID, balances[userID]))
	}

	return output, nil
}

// SaveLeaderboard replaces the snapshot
func (r *documentRepository) SaveLeaderboard(ctx context.Context, input *SaveLeaderboardInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	records := make([]leaderboardRecord, 0, len(input.Entries))
	for _, entry := range input.Entries {
		records = append(records, leaderboardRecord{UserID: entry.UserID, Points: entry.Points})
	}

	return r.store.Put(ctx, LeaderboardKey, records)
}

// GetLeaderboard reads the snapshot
func (r *documentRepository) GetLeaderboard(ctx context.Context) (*GetLeaderboardOutput, error) {
	var records []leaderboardRecord
	found, err := r.store.Get(ctx, LeaderboardKey, &records)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read leaderboard")
	}

	output := &GetLeaderboardOutput{Found: found}
	for _, rec := range records {
		output.Entries = append(output.Entries, &models.LeaderboardEntry{UserID: rec.UserID, Points: rec.Points})
	}

	return output, nil
}

// decodeBalance accepts both the nested record and the older bare number
// holding only the points.
func decodeBalance(userID string, raw json.RawMessage) *models.PointBalance {
	balance := &models.PointBalance{UserID: userID}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return balance
	}

	if raw[0] != '{' {
		if err := json.Unmarshal(raw, &balance.Points); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Resetting malformed point balance")
		}
		return balance
	}

	var rec balanceRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Resetting malformed point balance")
		return balance
	}

	balance.Points = rec.Points
	balance.CompletedSessions = rec.CompletedSessions
	return balance
}
