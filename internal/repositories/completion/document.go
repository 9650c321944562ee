package completion

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/focusbot/internal/repositories/document"
)

const (
	// DocumentKey is the document holding completed-session counters
	DocumentKey = "pomodoros_concluidos"
)

// Config holds configuration for the counter repository
type Config struct {
	Store document.Store
}

type documentRepository struct {
	store document.Store
}

// NewDocument creates a new counter repository
func NewDocument(cfg *Config) (*documentRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Store == nil {
		return nil, errors.New("document store cannot be nil")
	}

	return &documentRepository{store: cfg.Store}, nil
}

// GetCount retrieves a user's counter
func (r *documentRepository) GetCount(ctx context.Context, input *GetCountInput) (*GetCountOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	counters := r.store.Load(ctx, DocumentKey)
	return &GetCountOutput{Count: decodeCount(input.UserID, counters[input.UserID])}, nil
}

// UpdateCount applies input.Update to a user's counter
func (r *documentRepository) UpdateCount(ctx context.Context, input *UpdateCountInput) (*UpdateCountOutput, error) {
	if input == nil || input.UserID == "" || input.Update == nil {
		return nil, errors.New("input, user ID and update cannot be empty")
	}

	output := &UpdateCountOutput{}
	err := r.store.Update(ctx, DocumentKey, func(m document.Mapping) error {
		output.Previous = decodeCount(input.UserID, m[input.UserID])
		output.Count = input.Update(output.Previous)

		raw, err := json.Marshal(output.Count)
		if err != nil {
			return errors.Wrap(err, "failed to marshal counter")
		}
		m[input.UserID] = raw
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update counter")
	}

	return output, nil
}

func decodeCount(userID string, raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var count int
	if err := json.Unmarshal(raw, &count); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Resetting malformed completion counter")
		return 0
	}
	return count
}
