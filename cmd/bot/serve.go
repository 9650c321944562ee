package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/focusbot/internal/common/clock"
	"github.com/KirkDiggler/focusbot/internal/common/uuid"
	"github.com/KirkDiggler/focusbot/internal/config"
	"github.com/KirkDiggler/focusbot/internal/handlers/discord"
	pomodoroRepo "github.com/KirkDiggler/focusbot/internal/repositories/pomodoro"
	"github.com/KirkDiggler/focusbot/internal/scheduler"
	"github.com/KirkDiggler/focusbot/internal/services/messaging"
	"github.com/KirkDiggler/focusbot/internal/services/pomodoro"
	"github.com/KirkDiggler/focusbot/internal/services/quote"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Discord bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts.cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := cfg.ValidateBot(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return errors.Wrap(err, "failed to create Discord session")
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	rewardsService, err := newRewardsService(store, cfg)
	if err != nil {
		return err
	}

	messagingService, err := messaging.New(&messaging.Config{})
	if err != nil {
		return errors.Wrap(err, "failed to create messaging service")
	}

	quoteProvider, err := quote.New(&quote.Config{
		URL:     cfg.Quotes.APIURL,
		Timeout: cfg.Quotes.Timeout,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create quote provider")
	}

	notifier, err := discord.NewNotifier(&discord.NotifierConfig{
		Editor:              session,
		MessagingService:    messagingService,
		CompletionsPerBonus: cfg.Rewards.CompletionsPerBonus,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create notifier")
	}

	sessionRepository, err := pomodoroRepo.NewDocument(&pomodoroRepo.Config{Store: store})
	if err != nil {
		return errors.Wrap(err, "failed to create session repository")
	}

	pomodoroService, err := pomodoro.New(&pomodoro.Config{
		Repository:        sessionRepository,
		Rewards:           rewardsService,
		Quotes:            quoteProvider,
		Notifier:          notifier,
		Scheduler:         scheduler.New(),
		Clock:             clock.New(),
		UUIDGenerator:     uuid.New(),
		RefreshInterval:   cfg.Pomodoro.RefreshInterval,
		InteractionWindow: cfg.Pomodoro.InteractionWindow,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create pomodoro service")
	}
	defer pomodoroService.Shutdown()

	bot, err := discord.New(&discord.Config{
		Session:             session,
		ApplicationID:       cfg.Discord.ApplicationID,
		GuildID:             cfg.Discord.GuildID,
		PomodoroService:     pomodoroService,
		RewardsService:      rewardsService,
		MessagingService:    messagingService,
		QuoteProvider:       quoteProvider,
		CommandReward:       cfg.Rewards.CommandReward,
		CompletionsPerBonus: cfg.Rewards.CompletionsPerBonus,
		LeaderboardSize:     cfg.Rewards.LeaderboardSize,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create Discord bot")
	}

	if err := bot.Start(); err != nil {
		return errors.Wrap(err, "failed to start Discord bot")
	}

	recovered, err := pomodoroService.Recover(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to recover sessions")
	} else {
		log.Info().
			Int("sessions", recovered.Sessions).
			Int("resumed", recovered.Resumed).
			Msg("Recovered sessions")
	}

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	if err := bot.Stop(); err != nil {
		log.Error().Err(err).Msg("Error stopping bot")
	}

	log.Info().Msg("Bot has been shut down")
	return nil
}
