package pomodoro

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/focusbot/internal/common/clock"
	"github.com/KirkDiggler/focusbot/internal/common/uuid"
	"github.com/KirkDiggler/focusbot/internal/models"
	"github.com/KirkDiggler/focusbot/internal/progress"
	pomodoroRepo "github.com/KirkDiggler/focusbot/internal/repositories/pomodoro"
	"github.com/KirkDiggler/focusbot/internal/scheduler"
	"github.com/KirkDiggler/focusbot/internal/services/quote"
	"github.com/KirkDiggler/focusbot/internal/services/rewards"
)

// service implements the Service interface
type service struct {
	repo          pomodoroRepo.Repository
	rewards       rewards.Service
	quotes        quote.Provider
	notifier      Notifier
	scheduler     scheduler.Scheduler
	clock         clock.Clock
	uuidGenerator uuid.UUID

	refreshInterval   time.Duration
	interactionWindow time.Duration

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// New creates a new pomodoro service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}

	if cfg.Rewards == nil {
		return nil, ErrNilRewards
	}

	if cfg.Quotes == nil {
		return nil, ErrNilQuotes
	}

	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}

	if cfg.Scheduler == nil {
		return nil, ErrNilScheduler
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	svc := &service{
		repo:              cfg.Repository,
		rewards:           cfg.Rewards,
		quotes:            cfg.Quotes,
		notifier:          cfg.Notifier,
		scheduler:         cfg.Scheduler,
		clock:             cfg.Clock,
		uuidGenerator:     cfg.UUIDGenerator,
		refreshInterval:   cfg.RefreshInterval,
		interactionWindow: cfg.InteractionWindow,
		userLocks:         make(map[string]*sync.Mutex),
	}

	if svc.refreshInterval <= 0 {
		svc.refreshInterval = DefaultRefreshInterval
	}
	if svc.interactionWindow <= 0 {
		svc.interactionWindow = DefaultInteractionWindow
	}

	return svc, nil
}

// CreateSession creates an inactive session for the user
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	focus := strings.TrimSpace(input.Focus)
	if focus == "" {
		return nil, ErrInvalidFocus
	}

	if input.DurationMinutes < MinDurationMinutes || input.DurationMinutes > MaxDurationMinutes {
		return nil, ErrInvalidDuration
	}

	var notification *Notification
	err := s.withUserLock(input.UserID, func() error {
		_, err := s.repo.GetSession(ctx, &pomodoroRepo.GetSessionInput{UserID: input.UserID})
		if err == nil {
			return ErrSessionExists
		}
		if !errors.Is(err, pomodoroRepo.ErrSessionNotFound) {
			return errors.Wrap(err, "failed to check for an existing session")
		}

		now := s.clock.Now()
		session := &models.Session{
			ID:              s.uuidGenerator.NewUUID(),
			UserID:          input.UserID,
			Focus:           focus,
			DurationMinutes: input.DurationMinutes,
			State:           models.SessionStateInactive,
			ChannelID:       input.ChannelID,
			CreatedAt:       now,
		}

		if err := s.repo.SaveSession(ctx, &pomodoroRepo.SaveSessionInput{Session: session}); err != nil {
			return errors.Wrap(err, "failed to save session")
		}

		s.resetWindow(input.UserID)
		notification = s.newNotification(EventUpdated, session, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", input.UserID).
		Str("session_id", notification.Session.ID).
		Int("duration", input.DurationMinutes).
		Msg("Created pomodoro")

	notification.Quote = s.quotes.FetchQuote(ctx)
	return &CreateSessionOutput{Notification: notification}, nil
}

// GetPanel returns the user's session as it should be displayed now
func (s *service) GetPanel(ctx context.Context, input *GetPanelInput) (*GetPanelOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	var notification *Notification
	err := s.withUserLock(input.UserID, func() error {
		session, err := s.repo.GetSession(ctx, &pomodoroRepo.GetSessionInput{UserID: input.UserID})
		if err != nil {
			return mapRepositoryError(err)
		}

		if session.State.IsActive() {
			s.ensureRefresh(input.UserID)
		}
		s.resetWindow(input.UserID)

		notification = s.newNotification(EventUpdated, session, s.clock.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	notification.Quote = s.quotes.FetchQuote(ctx)
	return &GetPanelOutput{Notification: notification}, nil
}

// AttachPanel records where the session panel is displayed
func (s *service) AttachPanel(ctx context.Context, input *AttachPanelInput) (*AttachPanelOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	var session *models.Session
	err := s.withUserLock(input.UserID, func() error {
		updated, err := s.repo.UpdateSession(ctx, &pomodoroRepo.UpdateSessionInput{
			UserID:    input.UserID,
			SessionID: input.SessionID,
			Update: func(sess *models.Session) error {
				sess.ChannelID = input.ChannelID
				sess.MessageID = input.MessageID
				return nil
			},
		})
		if err != nil {
			return mapRepositoryError(err)
		}

		if updated.State.IsActive() {
			s.ensureRefresh(input.UserID)
		}
		s.resetWindow(input.UserID)

		session = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("user_id", input.UserID).
		Str("session_id", session.ID).
		Str("channel_id", input.ChannelID).
		Str("message_id", input.MessageID).
		Msg("Attached pomodoro panel")

	return &AttachPanelOutput{Session: session}, nil
}

// Start starts an inactive or paused session. Starting an active session is a no-op.
func (s *service) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if err := authorize(input.ActorID, input.OwnerID); err != nil {
		return nil, err
	}

	var notification *Notification
	err := s.withUserLock(input.OwnerID, func() error {
		now := s.clock.Now()
		session, err := s.repo.UpdateSession(ctx, &pomodoroRepo.UpdateSessionInput{
			UserID:    input.OwnerID,
			SessionID: input.SessionID,
			Update: func(sess *models.Session) error {
				if !sess.State.IsActive() {
					activate(sess, now)
				}
				return nil
			},
		})
		if err != nil {
			return mapRepositoryError(err)
		}

		s.ensureRefresh(input.OwnerID)
		s.resetWindow(input.OwnerID)

		notification = s.newNotification(EventUpdated, session, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", input.OwnerID).
		Str("session_id", notification.Session.ID).
		Msg("Started pomodoro")

	notification.Quote = s.quotes.FetchQuote(ctx)
	return &StartOutput{Notification: notification}, nil
}

// Pause commits the running time and pauses the session. A paused session is resumed.
func (s *service) Pause(ctx context.Context, input *PauseInput) (*PauseOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if err := authorize(input.ActorID, input.OwnerID); err != nil {
		return nil, err
	}

	var notification *Notification
	resumed := false
	err := s.withUserLock(input.OwnerID, func() error {
		now := s.clock.Now()
		session, err := s.repo.UpdateSession(ctx, &pomodoroRepo.UpdateSessionInput{
			UserID:    input.OwnerID,
			SessionID: input.SessionID,
			Update: func(sess *models.Session) error {
				switch {
				case sess.State.IsActive():
					sess.Elapsed = progressAt(sess, now).Elapsed
					sess.StartedAt = nil
					sess.State = models.SessionStatePaused
					resumed = false
				case sess.State.IsPaused():
					activate(sess, now)
					resumed = true
				default:
					return ErrInvalidTransition
				}
				return nil
			},
		})
		if err != nil {
			return mapRepositoryError(err)
		}

		if resumed {
			s.ensureRefresh(input.OwnerID)
		} else {
			s.scheduler.Cancel(refreshKey(input.OwnerID))
		}
		s.resetWindow(input.OwnerID)

		notification = s.newNotification(EventUpdated, session, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", input.OwnerID).
		Str("session_id", notification.Session.ID).
		Bool("resumed", resumed).
		Dur("elapsed", notification.Session.Elapsed).
		Msg("Toggled pomodoro pause")

	notification.Quote = s.quotes.FetchQuote(ctx)
	return &PauseOutput{Notification: notification, Resumed: resumed}, nil
}

// Stop removes the session and cancels its timers
func (s *service) Stop(ctx context.Context, input *StopInput) (*StopOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if err := authorize(input.ActorID, input.OwnerID); err != nil {
		return nil, err
	}

	var notification *Notification
	err := s.withUserLock(input.OwnerID, func() error {
		session, err := s.repo.GetSession(ctx, &pomodoroRepo.GetSessionInput{UserID: input.OwnerID})
		if err != nil {
			return mapRepositoryError(err)
		}

		if input.SessionID != "" && session.ID != input.SessionID {
			return ErrStalePanel
		}

		now := s.clock.Now()
		p := progressAt(session, now)

		out, err := s.repo.DeleteSession(ctx, &pomodoroRepo.DeleteSessionInput{
			UserID:    input.OwnerID,
			SessionID: session.ID,
		})
		if err != nil {
			return errors.Wrap(err, "failed to delete session")
		}
		if !out.Deleted {
			return ErrStalePanel
		}

		s.cancelTimers(input.OwnerID)

		session.Elapsed = p.Elapsed
		session.StartedAt = nil
		session.State = models.SessionStateStopped

		notification = &Notification{Event: EventStopped, Session: session, Progress: p}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", input.OwnerID).
		Str("session_id", notification.Session.ID).
		Int("percent", notification.Progress.Percent).
		Msg("Stopped pomodoro")

	notification.Quote = s.quotes.FetchQuote(ctx)
	return &StopOutput{Notification: notification}, nil
}

// Tick re-reads the session and advances it. Missing or non-active sessions
// cancel the refresh timer and do nothing else.
func (s *service) Tick(ctx context.Context, input *TickInput) (*TickOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	var notification *Notification
	err := s.withUserLock(input.UserID, func() error {
		session, err := s.repo.GetSession(ctx, &pomodoroRepo.GetSessionInput{UserID: input.UserID})
		if errors.Is(err, pomodoroRepo.ErrSessionNotFound) {
			s.scheduler.Cancel(refreshKey(input.UserID))
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to load session")
		}

		if !session.State.IsActive() {
			s.scheduler.Cancel(refreshKey(input.UserID))
			return nil
		}

		now := s.clock.Now()
		p := progressAt(session, now)

		if p.IsComplete() {
			notification, err = s.complete(ctx, session, p)
			return err
		}

		updated, err := s.repo.UpdateSession(ctx, &pomodoroRepo.UpdateSessionInput{
			UserID:    input.UserID,
			SessionID: session.ID,
			Update: func(sess *models.Session) error {
				sess.Elapsed = p.Elapsed
				sess.StartedAt = &now
				return nil
			},
		})
		if err != nil {
			return errors.Wrap(err, "failed to commit session progress")
		}

		notification = &Notification{Event: EventUpdated, Session: updated, Progress: p}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if notification == nil {
		return &TickOutput{}, nil
	}

	notification.Quote = s.quotes.FetchQuote(ctx)

	if notification.Event == EventCompleted {
		s.notify(ctx, input.UserID, notification)
		return &TickOutput{Notification: notification}, nil
	}

	// A control may have landed while the quote was fetched. The update is
	// only sent if the session is still the one ticked and still running,
	// and it is sent under the lock so a later control edits the panel last.
	delivered := false
	err = s.withUserLock(input.UserID, func() error {
		current, err := s.repo.GetSession(ctx, &pomodoroRepo.GetSessionInput{UserID: input.UserID})
		if err != nil {
			if errors.Is(err, pomodoroRepo.ErrSessionNotFound) {
				return nil
			}
			return errors.Wrap(err, "failed to reload session")
		}
		if current.ID != notification.Session.ID || !current.State.IsActive() {
			return nil
		}

		s.notify(ctx, input.UserID, notification)
		delivered = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !delivered {
		log.Debug().
			Str("user_id", input.UserID).
			Str("session_id", notification.Session.ID).
			Msg("Dropped stale pomodoro update")
		return &TickOutput{}, nil
	}

	return &TickOutput{Notification: notification}, nil
}

func (s *service) notify(ctx context.Context, userID string, notification *Notification) {
	if err := s.notifier.Notify(ctx, notification); err != nil {
		log.Error().Err(err).
			Str("user_id", userID).
			Str("event", string(notification.Event)).
			Msg("Failed to deliver pomodoro notification")
	}
}

// complete removes a finished session and pays out the completion. The
// record is deleted first so a failed payout can never be paid twice.
func (s *service) complete(ctx context.Context, session *models.Session, p progress.Progress) (*Notification, error) {
	out, err := s.repo.DeleteSession(ctx, &pomodoroRepo.DeleteSessionInput{
		UserID:    session.UserID,
		SessionID: session.ID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete completed session")
	}

	s.cancelTimers(session.UserID)
	if !out.Deleted {
		return nil, nil
	}

	session.Elapsed = p.Elapsed
	session.StartedAt = nil

	reward, err := s.rewards.RecordCompletion(ctx, &rewards.RecordCompletionInput{UserID: session.UserID})
	if err != nil {
		log.Error().Err(err).
			Str("user_id", session.UserID).
			Str("session_id", session.ID).
			Msg("Failed to record completed pomodoro")
		reward = nil
	}

	log.Info().
		Str("user_id", session.UserID).
		Str("session_id", session.ID).
		Msg("Completed pomodoro")

	return &Notification{Event: EventCompleted, Session: session, Progress: p, Reward: reward}, nil
}

// Expire drops the user's session without reward or notification
func (s *service) Expire(ctx context.Context, input *ExpireInput) (*ExpireOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	deleted := false
	err := s.withUserLock(input.UserID, func() error {
		s.cancelTimers(input.UserID)

		out, err := s.repo.DeleteSession(ctx, &pomodoroRepo.DeleteSessionInput{UserID: input.UserID})
		if err != nil {
			return errors.Wrap(err, "failed to delete expired session")
		}
		deleted = out.Deleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	if deleted {
		log.Info().Str("user_id", input.UserID).Msg("Expired idle pomodoro")
	}

	return &ExpireOutput{Deleted: deleted}, nil
}

// Recover arms the interaction window for every stored session and the
// refresh timer for active ones
func (s *service) Recover(ctx context.Context) (*RecoverOutput, error) {
	sessions, err := s.repo.ListSessions(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}

	output := &RecoverOutput{Sessions: len(sessions.Sessions)}
	for _, session := range sessions.Sessions {
		err := s.withUserLock(session.UserID, func() error {
			if session.State.IsActive() {
				s.ensureRefresh(session.UserID)
				output.Resumed++
			}
			s.resetWindow(session.UserID)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	log.Info().
		Int("sessions", output.Sessions).
		Int("resumed", output.Resumed).
		Msg("Recovered pomodoro timers")

	return output, nil
}

// Shutdown cancels every timer
func (s *service) Shutdown() {
	s.scheduler.Stop()
}

func (s *service) newNotification(event Event, session *models.Session, now time.Time) *Notification {
	return &Notification{
		Event:    event,
		Session:  session,
		Progress: progressAt(session, now),
	}
}

func (s *service) withUserLock(userID string, fn func() error) error {
	s.mu.Lock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	return fn()
}

func authorize(actorID, ownerID string) error {
	if ownerID == "" {
		return errors.New("owner ID cannot be empty")
	}

	if actorID != ownerID {
		log.Warn().Str("actor_id", actorID).Str("user_id", ownerID).Msg("Rejected pomodoro action from non-owner")
		return ErrNotSessionOwner
	}

	return nil
}

func activate(session *models.Session, now time.Time) {
	startedAt := now
	session.State = models.SessionStateActive
	session.StartedAt = &startedAt
}

func progressAt(session *models.Session, now time.Time) progress.Progress {
	in := progress.Input{
		Elapsed:         session.Elapsed,
		Running:         session.State.IsActive(),
		DurationMinutes: session.DurationMinutes,
		Now:             now,
	}
	if session.StartedAt != nil {
		in.StartedAt = *session.StartedAt
	}

	return progress.Calculate(in)
}

func mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, pomodoroRepo.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, pomodoroRepo.ErrSessionMismatch):
		return ErrStalePanel
	default:
		return err
	}
}
