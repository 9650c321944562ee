package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/focusbot/internal/services/messaging"
	"github.com/KirkDiggler/focusbot/internal/services/rewards"
)

// PontosCommand handles the /pontos command
type PontosCommand struct {
	BaseCommand
	rewardsService   rewards.Service
	messagingService messaging.Service
}

// NewPontosCommand creates a new pontos command handler
func NewPontosCommand(rewardsService rewards.Service, messagingService messaging.Service) *PontosCommand {
	return &PontosCommand{
		BaseCommand: BaseCommand{
			Name:        "pontos",
			Description: "Mostra quantos pontos você acumulou",
		},
		rewardsService:   rewardsService,
		messagingService: messagingService,
	}
}

// Handle replies with the caller's balance and refreshes the ranking
func (c *PontosCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	userID := interactionUserID(i)

	out, err := c.rewardsService.GetPoints(ctx, &rewards.GetPointsInput{UserID: userID})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get points")
		return RespondWithEphemeralMessage(s, i, messaging.GenericErrorMessage)
	}

	if _, err := c.rewardsService.RefreshLeaderboard(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to refresh leaderboard")
	}

	msg, err := c.messagingService.GetPointsMessage(ctx, &messaging.GetPointsMessageInput{
		Type:        messaging.PointsMessageBalance,
		TotalPoints: out.Points,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, messaging.GenericErrorMessage)
	}

	return RespondWithEphemeralMessage(s, i, msg.Message)
}
