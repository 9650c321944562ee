package pomodoro

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/focusbot/internal/models"
	"github.com/KirkDiggler/focusbot/internal/repositories/document"
)

const (
	// DocumentKey is the document holding every user's session
	DocumentKey = "pomodoros"
)

var (
	// ErrSessionNotFound is returned when a user has no session
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionMismatch is returned when the stored session is not the expected one
	ErrSessionMismatch = errors.New("stored session does not match")
)

// record is the persisted shape of a session. Times are unix milliseconds.
type record struct {
	ID        string `json:"id"`
	Focus     string `json:"focus"`
	Duration  int    `json:"duration"`
	Elapsed   int64  `json:"elapsed"`
	State     string `json:"state"`
	StartTime *int64 `json:"startTime"`
	ChannelID string `json:"channelId"`
	MessageID string `json:"messageId"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// Config holds configuration for the document-backed session repository
type Config struct {
	Store document.Store
}

// documentRepository implements Repository on the sessions document
type documentRepository struct {
	store document.Store
}

// NewDocument creates a new session repository
func NewDocument(cfg *Config) (*documentRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Store == nil {
		return nil, errors.New("document store cannot be nil")
	}

	return &documentRepository{store: cfg.Store}, nil
}

// GetSession retrieves a user's session
func (r *documentRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	sessions := r.store.Load(ctx, DocumentKey)
	return decodeSession(input.UserID, sessions[input.UserID])
}

// SaveSession writes a user's session
func (r *documentRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.UserID == "" {
		return errors.New("session user ID cannot be empty")
	}

	raw, err := encodeSession(input.Session)
	if err != nil {
		return err
	}

	return r.store.Update(ctx, DocumentKey, func(m document.Mapping) error {
		m[input.Session.UserID] = raw
		return nil
	})
}

// UpdateSession applies input.Update to the stored session and writes it back
func (r *documentRepository) UpdateSession(ctx context.Context, input *UpdateSessionInput) (*models.Session, error) {
	if input == nil || input.UserID == "" || input.Update == nil {
		return nil, errors.New("input, user ID and update cannot be empty")
	}

	var updated *models.Session
	err := r.store.Update(ctx, DocumentKey, func(m document.Mapping) error {
		session, err := decodeSession(input.UserID, m[input.UserID])
		if err != nil {
			return err
		}

		if input.SessionID != "" && session.ID != input.SessionID {
			return ErrSessionMismatch
		}

		if err := input.Update(session); err != nil {
			return err
		}

		// the owner can't be rewritten through an update
		session.UserID = input.UserID

		raw, err := encodeSession(session)
		if err != nil {
			return err
		}

		m[input.UserID] = raw
		updated = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteSession removes a user's session
func (r *documentRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	deleted := false
	err := r.store.Update(ctx, DocumentKey, func(m document.Mapping) error {
		raw, ok := m[input.UserID]
		if !ok {
			return nil
		}

		if input.SessionID != "" {
			session, err := decodeSession(input.UserID, raw)
			if err == nil && session.ID != input.SessionID {
				return nil
			}
		}

		delete(m, input.UserID)
		deleted = true
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete session")
	}

	return &DeleteSessionOutput{Deleted: deleted}, nil
}

// ListSessions returns every decodable session ordered by user ID
func (r *documentRepository) ListSessions(ctx context.Context) (*ListSessionsOutput, error) {
	sessions := r.store.Load(ctx, DocumentKey)

	userIDs := make([]string, 0, len(sessions))
	for userID := range sessions {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	output := &ListSessionsOutput{Sessions: make([]*models.Session, 0, len(userIDs))}
	for _, userID := range userIDs {
		session, err := decodeSession(userID, sessions[userID])
		if err != nil {
			continue
		}
		output.Sessions = append(output.Sessions, session)
	}

	return output, nil
}

func decodeSession(userID string, raw json.RawMessage) (*models.Session, error) {
	if len(raw) == 0 {
		return nil, ErrSessionNotFound
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Discarding malformed session record")
		return nil, ErrSessionNotFound
	}

	session := &models.Session{
		ID:              rec.ID,
		UserID:          userID,
		Focus:           rec.Focus,
		DurationMinutes: rec.Duration,
		Elapsed:         time.Duration(rec.Elapsed) * time.Millisecond,
		State:           models.SessionState(rec.State),
		ChannelID:       rec.ChannelID,
		MessageID:       rec.MessageID,
	}

	if rec.StartTime != nil {
		startedAt := time.UnixMilli(*rec.StartTime)
		session.StartedAt = &startedAt
	}

	if rec.CreatedAt != 0 {
		session.CreatedAt = time.UnixMilli(rec.CreatedAt)
	}

	return session, nil
}

func encodeSession(session *models.Session) (json.RawMessage, error) {
	rec := record{
		ID:        session.ID,
		Focus:     session.Focus,
		Duration:  session.DurationMinutes,
		Elapsed:   session.Elapsed.Milliseconds(),
		State:     string(session.State),
		ChannelID: session.ChannelID,
		MessageID: session.MessageID,
	}

	if session.StartedAt != nil {
		ms := session.StartedAt.UnixMilli()
		rec.StartTime = &ms
	}

	if !session.CreatedAt.IsZero() {
		rec.CreatedAt = session.CreatedAt.UnixMilli()
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal session")
	}

	return raw, nil
}
