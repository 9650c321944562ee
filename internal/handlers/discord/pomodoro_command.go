package discord

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/focusbot/internal/services/messaging"
	"github.com/KirkDiggler/focusbot/internal/services/pomodoro"
)

// PomodoroCommand handles the /pomodoro command, its modal and its panel buttons
type PomodoroCommand struct {
	BaseCommand
	pomodoroService pomodoro.Service
	presenter       *presenter
}

// NewPomodoroCommand creates a new pomodoro command handler
func NewPomodoroCommand(pomodoroService pomodoro.Service, p *presenter) *PomodoroCommand {
	return &PomodoroCommand{
		BaseCommand: BaseCommand{
			Name:        "pomodoro",
			Description: "Inicia um Pomodoro com barra de progresso e motivação",
			DMOnly:      true,
		},
		pomodoroService: pomodoroService,
		presenter:       p,
	}
}

// Handle shows the current panel, or asks for a new session when there is none
func (c *PomodoroCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	if c.DMOnly && isGuild(i) {
		return RespondWithEphemeralMessage(s, i, c.presenter.errorMessage(ctx, messaging.ErrorTypeDMOnly, c.Name))
	}

	userID := interactionUserID(i)
	out, err := c.pomodoroService.GetPanel(ctx, &pomodoro.GetPanelInput{UserID: userID})
	if errors.Is(err, pomodoro.ErrSessionNotFound) {
		return RespondWithModal(s, i, renderPomodoroModal())
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load pomodoro panel")
		return RespondWithEphemeralMessage(s, i, messaging.GenericErrorMessage)
	}

	return c.postPanel(ctx, s, i, out.Notification)
}

// HandleModal creates a session from the submitted form
func (c *PomodoroCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	userID := interactionUserID(i)

	values := modalValues(i.ModalSubmitData())
	duration, err := strconv.Atoi(strings.TrimSpace(values[ModalInputDuration]))
	if err != nil {
		return RespondWithEphemeralMessage(s, i, c.presenter.errorMessage(ctx, messaging.ErrorTypeInvalidDuration, c.Name))
	}

	out, err := c.pomodoroService.CreateSession(ctx, &pomodoro.CreateSessionInput{
		UserID:          userID,
		Focus:           values[ModalInputFocus],
		DurationMinutes: duration,
		ChannelID:       i.ChannelID,
	})
	if errors.Is(err, pomodoro.ErrSessionExists) {
		panel, panelErr := c.pomodoroService.GetPanel(ctx, &pomodoro.GetPanelInput{UserID: userID})
		if panelErr != nil {
			log.Error().Err(panelErr).Str("user_id", userID).Msg("Failed to load existing pomodoro panel")
			return RespondWithEphemeralMessage(s, i, messaging.GenericErrorMessage)
		}
		return c.postPanel(ctx, s, i, panel.Notification)
	}
	if err != nil {
		if !pomodoro.IsValidationError(err) {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to create pomodoro")
		}
		return RespondWithEphemeralMessage(s, i, c.presenter.errorMessage(ctx, errorTypeFor(err), c.Name))
	}

	return c.postPanel(ctx, s, i, out.Notification)
}

// HandleButton applies a panel button to the owner's session
func (c *PomodoroCommand) HandleButton(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	id, err := ParseButtonID(i.MessageComponentData().CustomID)
	if err != nil {
		return RespondWithEphemeralMessage(s, i, messaging.GenericErrorMessage)
	}

	actorID := interactionUserID(i)

	var notification *pomodoro.Notification
	switch id.Action {
	case ButtonStart:
		out, actionErr := c.pomodoroService.Start(ctx, &pomodoro.StartInput{
			ActorID:   actorID,
			OwnerID:   id.OwnerID,
			SessionID: id.SessionID,
		})
		if actionErr == nil {
			notification = out.Notification
		}
		err = actionErr
	case ButtonPause:
		out, actionErr := c.pomodoroService.Pause(ctx, &pomodoro.PauseInput{
			ActorID:   actorID,
			OwnerID:   id.OwnerID,
			SessionID: id.SessionID,
		})
		if actionErr == nil {
			notification = out.Notification
		}
		err = actionErr
	case ButtonStop:
		out, actionErr := c.pomodoroService.Stop(ctx, &pomodoro.StopInput{
			ActorID:   actorID,
			OwnerID:   id.OwnerID,
			SessionID: id.SessionID,
		})
		if actionErr == nil {
			notification = out.Notification
		}
		err = actionErr
	}

	if errors.Is(err, pomodoro.ErrInvalidTransition) {
		panel, panelErr := c.pomodoroService.GetPanel(ctx, &pomodoro.GetPanelInput{UserID: id.OwnerID})
		if panelErr == nil {
			notification, err = panel.Notification, nil
		}
	}
	if err != nil {
		errorType := errorTypeFor(err)
		if errorType == messaging.ErrorTypeGeneric {
			log.Error().Err(err).
				Str("user_id", actorID).
				Str("action", id.Action).
				Msg("Failed to apply pomodoro action")
		}
		return RespondWithEphemeralMessage(s, i, c.presenter.errorMessage(ctx, errorType, c.Name))
	}

	embed, components, err := c.presenter.render(ctx, notification)
	if err != nil {
		return errors.Wrap(err, "failed to render pomodoro panel")
	}

	return UpdateWithEmbed(s, i, embed, components)
}

// postPanel answers with the panel and binds the posted message to the session
func (c *PomodoroCommand) postPanel(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, n *pomodoro.Notification) error {
	embed, components, err := c.presenter.render(ctx, n)
	if err != nil {
		return errors.Wrap(err, "failed to render pomodoro panel")
	}

	if err := RespondWithEmbedAndButtons(s, i, embed, components); err != nil {
		return errors.Wrap(err, "failed to send pomodoro panel")
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return errors.Wrap(err, "failed to fetch pomodoro panel message")
	}

	_, err = c.pomodoroService.AttachPanel(ctx, &pomodoro.AttachPanelInput{
		UserID:    n.Session.UserID,
		SessionID: n.Session.ID,
		ChannelID: msg.ChannelID,
		MessageID: msg.ID,
	})
	if err != nil {
		return errors.Wrap(err, "failed to attach pomodoro panel")
	}

	return nil
}

// modalValues collects the text inputs of a submitted modal by custom id
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, component := range data.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}
