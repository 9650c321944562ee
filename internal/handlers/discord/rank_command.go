package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/focusbot/internal/services/messaging"
	"github.com/KirkDiggler/focusbot/internal/services/rewards"
)

const (
	noRankingMessage    = "Nenhum ranking disponível no momento."
	emptyRankingMessage = "Nenhum usuário pontuou ainda."
)

// RankCommand handles the /rank command
type RankCommand struct {
	BaseCommand
	rewardsService  rewards.Service
	presenter       *presenter
	leaderboardSize int
}

// NewRankCommand creates a new rank command handler
func NewRankCommand(rewardsService rewards.Service, p *presenter, leaderboardSize int) *RankCommand {
	if leaderboardSize <= 0 {
		leaderboardSize = rewards.DefaultLeaderboardSize
	}

	return &RankCommand{
		BaseCommand: BaseCommand{
			Name:        "rank",
			Description: "Mostra o ranking dos usuários com mais pontos",
			DMOnly:      true,
		},
		rewardsService:  rewardsService,
		presenter:       p,
		leaderboardSize: leaderboardSize,
	}
}

// Handle replies with the persisted leaderboard
func (c *RankCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	if c.DMOnly && isGuild(i) {
		return RespondWithEphemeralMessage(s, i, c.presenter.errorMessage(ctx, messaging.ErrorTypeDMOnly, c.Name))
	}

	out, err := c.rewardsService.GetLeaderboard(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get leaderboard")
		return RespondWithEphemeralMessage(s, i, messaging.GenericErrorMessage)
	}

	return RespondWithEphemeralMessage(s, i, c.rankingText(out))
}

func (c *RankCommand) rankingText(out *rewards.GetLeaderboardOutput) string {
	switch {
	case !out.Found:
		return noRankingMessage
	case len(out.Entries) == 0:
		return emptyRankingMessage
	default:
		return renderLeaderboard(c.leaderboardSize, out.Entries)
	}
}
