package pomodoro

import (
	"context"

	"github.com/rs/zerolog/log"
)

func refreshKey(userID string) string {
	return "refresh:" + userID
}

func windowKey(userID string) string {
	return "window:" + userID
}

// ensureRefresh arms the refresh timer unless one is already running
func (s *service) ensureRefresh(userID string) {
	armed := s.scheduler.Every(refreshKey(userID), s.refreshInterval, func() {
		if _, err := s.Tick(context.Background(), &TickInput{UserID: userID}); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to refresh pomodoro")
		}
	})
	if armed {
		log.Debug().Str("user_id", userID).Dur("interval", s.refreshInterval).Msg("Armed pomodoro refresh")
	}
}

// resetWindow restarts the interaction window
func (s *service) resetWindow(userID string) {
	s.scheduler.After(windowKey(userID), s.interactionWindow, func() {
		if _, err := s.Expire(context.Background(), &ExpireInput{UserID: userID}); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to expire pomodoro")
		}
	})
}

func (s *service) cancelTimers(userID string) {
	s.scheduler.Cancel(refreshKey(userID))
	s.scheduler.Cancel(windowKey(userID))
}
