package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/focusbot/internal/common/clock"
	"github.com/KirkDiggler/focusbot/internal/services/messaging"
	"github.com/KirkDiggler/focusbot/internal/services/pomodoro"
	"github.com/KirkDiggler/focusbot/internal/services/quote"
	"github.com/KirkDiggler/focusbot/internal/services/rewards"
)

// DefaultCommandReward is credited for every non-core command used in a guild
const DefaultCommandReward = 50

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config

	pomodoroCommand *PomodoroCommand
	rewardsService  rewards.Service
	messaging       messaging.Service
}

// Config holds the configuration for the bot
type Config struct {
	// Session is an unopened Discord session
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	PomodoroService  pomodoro.Service
	RewardsService   rewards.Service
	MessagingService messaging.Service
	QuoteProvider    quote.Provider

	// Clock defaults to the system clock
	Clock clock.Clock

	// CommandReward is credited for guild commands outside the pomodoro feature
	CommandReward int

	// CompletionsPerBonus is shown in the completion message
	CompletionsPerBonus int

	// LeaderboardSize is the length of the /rank list
	LeaderboardSize int
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	if cfg.PomodoroService == nil {
		return nil, errors.New("pomodoro service cannot be nil")
	}

	if cfg.RewardsService == nil {
		return nil, errors.New("rewards service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.QuoteProvider == nil {
		return nil, errors.New("quote provider cannot be nil")
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	if cfg.CommandReward <= 0 {
		cfg.CommandReward = DefaultCommandReward
	}

	if cfg.CompletionsPerBonus <= 0 {
		cfg.CompletionsPerBonus = rewards.DefaultCompletionsPerBonus
	}

	p := &presenter{
		messaging:           cfg.MessagingService,
		clock:               cfg.Clock,
		completionsPerBonus: cfg.CompletionsPerBonus,
	}

	bot := &Bot{
		session:         cfg.Session,
		commands:        make(map[string]CommandHandler),
		commandIDs:      make(map[string]string),
		config:          cfg,
		pomodoroCommand: NewPomodoroCommand(cfg.PomodoroService, p),
		rewardsService:  cfg.RewardsService,
		messaging:       cfg.MessagingService,
	}

	for _, cmd := range []CommandHandler{
		bot.pomodoroCommand,
		NewPontosCommand(cfg.RewardsService, cfg.MessagingService),
		NewRankCommand(cfg.RewardsService, p, cfg.LeaderboardSize),
		NewFraseCommand(cfg.QuoteProvider),
	} {
		bot.commands[cmd.GetName()] = cmd
	}

	// Register the interaction handler
	cfg.Session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return errors.Wrap(err, "failed to open Discord connection")
	}

	for _, cmd := range b.commands {
		if err := b.RegisterCommand(cmd); err != nil {
			return err
		}
	}

	log.Info().Int("commands", len(b.commandIDs)).Msg("Bot is now running")
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.applicationID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Error().Err(err).Str("command", cmdName).Str("command_id", cmdID).Msg("Failed to delete command")
		} else {
			log.Info().Str("command", cmdName).Str("command_id", cmdID).Msg("Deleted command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	if b.config.GuildID != "" {
		log.Info().Str("command", cmd.GetName()).Str("guild_id", b.config.GuildID).Msg("Registering command for guild")
	} else {
		log.Info().Str("command", cmd.GetName()).Msg("Registering command globally")
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.applicationID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return errors.Wrapf(err, "failed to create command %s", cmd.GetName())
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Info().Str("command", cmd.GetName()).Str("command_id", createdCmd.ID).Msg("Registered command")

	return nil
}

func (b *Bot) applicationID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		h, ok := b.commands[name]
		if !ok {
			return
		}
		if err := h.Handle(s, i); err != nil {
			log.Error().Err(err).Str("command", name).Msg("Error handling command")
			respondWithFailure(s, i)
			return
		}
		if isGuild(i) && !isCoreCommand(name) {
			b.creditCommand(s, i)
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		if !IsPomodoroButton(customID) {
			return
		}
		if err := b.pomodoroCommand.HandleButton(s, i); err != nil {
			log.Error().Err(err).Str("custom_id", customID).Msg("Error handling button")
			respondWithFailure(s, i)
		}

	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID != ModalPomodoro {
			return
		}
		if err := b.pomodoroCommand.HandleModal(s, i); err != nil {
			log.Error().Err(err).Msg("Error handling pomodoro modal")
			respondWithFailure(s, i)
		}
	}
}

// respondWithFailure tells the user a handler failed. Interactions that were
// already answered get the message as a followup instead.
func respondWithFailure(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := RespondWithEphemeralMessage(s, i, messaging.GenericErrorMessage)
	if err == nil {
		return
	}

	if err := FollowupEphemeral(s, i, messaging.GenericErrorMessage); err != nil {
		log.Warn().Err(err).Str("interaction_id", i.ID).Msg("Failed to report handler error")
	}
}

// creditCommand rewards guild members for using the bot's other commands
func (b *Bot) creditCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := interactionUserID(i)

	out, err := b.rewardsService.AddPoints(ctx, &rewards.AddPointsInput{
		UserID: userID,
		Amount: b.config.CommandReward,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to credit command points")
		return
	}

	msg, err := b.messaging.GetPointsMessage(ctx, &messaging.GetPointsMessageInput{
		Type:        messaging.PointsMessageCredit,
		Amount:      b.config.CommandReward,
		TotalPoints: out.TotalPoints,
	})
	if err != nil {
		return
	}

	if err := FollowupEphemeral(s, i, msg.Message); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to send points followup")
	}
}

// isCoreCommand reports whether a command belongs to the pomodoro and points feature
func isCoreCommand(name string) bool {
	switch name {
	case "pomodoro", "pontos", "rank":
		return true
	}
	return false
}
