package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/focusbot/internal/services/quote"
)

// FraseCommand handles the /frase command
type FraseCommand struct {
	BaseCommand
	quotes quote.Provider
}

// NewFraseCommand creates a new frase command handler
func NewFraseCommand(quotes quote.Provider) *FraseCommand {
	return &FraseCommand{
		BaseCommand: BaseCommand{
			Name:        "frase",
			Description: "Envia uma frase motivacional",
		},
		quotes: quotes,
	}
}

// Handle replies with a motivational quote
func (c *FraseCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return RespondWithMessage(s, i, c.quotes.FetchQuote(context.Background()))
}
