package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"

	"github.com/KirkDiggler/focusbot/internal/common/clock"
	"github.com/KirkDiggler/focusbot/internal/services/messaging"
	"github.com/KirkDiggler/focusbot/internal/services/pomodoro"
)

// presenter turns session notifications into Discord messages
type presenter struct {
	messaging           messaging.Service
	clock               clock.Clock
	completionsPerBonus int
}

// render builds the embed and buttons for a notification. Finished sessions
// are rendered without buttons.
func (p *presenter) render(ctx context.Context, n *pomodoro.Notification) (*discordgo.MessageEmbed, []discordgo.MessageComponent, error) {
	if n == nil || n.Session == nil {
		return nil, nil, errors.New("notification and session cannot be nil")
	}

	now := p.clock.Now()

	switch n.Event {
	case pomodoro.EventCompleted:
		input := &messaging.GetCompletionMessageInput{
			Focus:               n.Session.Focus,
			Quote:               n.Quote,
			CompletionsPerBonus: p.completionsPerBonus,
		}
		if n.Reward != nil {
			input.Bonus = n.Reward.Bonus
			input.PendingCompletions = n.Reward.PendingCompletions
		}

		out, err := p.messaging.GetCompletionMessage(ctx, input)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to get completion message")
		}
		return renderResultEmbed(out.Title, out.Message, colorCompleted, now), nil, nil

	case pomodoro.EventStopped:
		out, err := p.messaging.GetStopMessage(ctx, &messaging.GetStopMessageInput{Quote: n.Quote})
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to get stop message")
		}
		return renderResultEmbed(out.Title, out.Message, colorStopped, now), nil, nil
	}

	footer := ""
	status, err := p.messaging.GetStatusMessage(ctx, &messaging.GetStatusMessageInput{
		State:   n.Session.State,
		Percent: n.Progress.Percent,
	})
	if err == nil {
		footer = status.Message
	}

	return renderPanelEmbed(n, footer, now), renderPanelComponents(n.Session), nil
}

// errorMessage returns the reply text for a failed user action
func (p *presenter) errorMessage(ctx context.Context, errorType messaging.ErrorType, command string) string {
	out, err := p.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: errorType,
		Command:   command,
	})
	if err != nil {
		return messaging.GenericErrorMessage
	}
	return out.Message
}

// errorTypeFor classifies a lifecycle error for the user
func errorTypeFor(err error) messaging.ErrorType {
	switch {
	case errors.Is(err, pomodoro.ErrInvalidDuration):
		return messaging.ErrorTypeInvalidDuration
	case errors.Is(err, pomodoro.ErrInvalidFocus):
		return messaging.ErrorTypeInvalidFocus
	case pomodoro.IsAuthorizationError(err):
		return messaging.ErrorTypeNotOwner
	case errors.Is(err, pomodoro.ErrStalePanel), errors.Is(err, pomodoro.ErrSessionNotFound):
		return messaging.ErrorTypeStalePanel
	default:
		return messaging.ErrorTypeGeneric
	}
}
