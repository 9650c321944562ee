package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/focusbot/internal/common/clock"
	"github.com/KirkDiggler/focusbot/internal/services/messaging"
	"github.com/KirkDiggler/focusbot/internal/services/pomodoro"
	"github.com/KirkDiggler/focusbot/internal/services/rewards"
)

// MessageEditor edits a message that was already posted. *discordgo.Session
// satisfies it.
type MessageEditor interface {
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// NotifierConfig holds configuration for the panel notifier
type NotifierConfig struct {
	Editor           MessageEditor
	MessagingService messaging.Service

	// Clock defaults to the system clock
	Clock clock.Clock

	// CompletionsPerBonus is shown in the completion message
	CompletionsPerBonus int
}

// Notifier edits session panels when a timer changes a session
type Notifier struct {
	editor    MessageEditor
	presenter *presenter
}

// NewNotifier creates a new panel notifier
func NewNotifier(cfg *NotifierConfig) (*Notifier, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Editor == nil {
		return nil, errors.New("message editor cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	perBonus := cfg.CompletionsPerBonus
	if perBonus <= 0 {
		perBonus = rewards.DefaultCompletionsPerBonus
	}

	return &Notifier{
		editor: cfg.Editor,
		presenter: &presenter{
			messaging:           cfg.MessagingService,
			clock:               clk,
			completionsPerBonus: perBonus,
		},
	}, nil
}

// Notify re-renders the panel bound to the notification's session
func (n *Notifier) Notify(ctx context.Context, notification *pomodoro.Notification) error {
	if notification == nil || notification.Session == nil {
		return errors.New("notification and session cannot be nil")
	}

	session := notification.Session
	if !session.HasPanel() {
		log.Debug().
			Str("user_id", session.UserID).
			Str("session_id", session.ID).
			Msg("Session has no panel, skipping notification")
		return nil
	}

	embed, components, err := n.presenter.render(ctx, notification)
	if err != nil {
		return err
	}

	embeds := []*discordgo.MessageEmbed{embed}
	if components == nil {
		components = []discordgo.MessageComponent{}
	}

	_, err = n.editor.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         session.MessageID,
		Channel:    session.ChannelID,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to edit panel %s", session.MessageID)
	}

	log.Debug().
		Str("user_id", session.UserID).
		Str("session_id", session.ID).
		Str("event", string(notification.Event)).
		Msg("Updated session panel")

	return nil
}
