package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/focusbot/internal/config"
	"github.com/KirkDiggler/focusbot/internal/repositories/completion"
	"github.com/KirkDiggler/focusbot/internal/repositories/document"
	"github.com/KirkDiggler/focusbot/internal/repositories/points"
	"github.com/KirkDiggler/focusbot/internal/services/rewards"
)

// openStore builds the document gateway for the configured backend. The
// returned func releases the backend.
func openStore(ctx context.Context, cfg *config.Config) (document.Store, func(), error) {
	var (
		backend document.Backend
		closer  = func() {}
	)

	switch cfg.Store.Backend {
	case config.BackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			redisClient.Close()
			return nil, nil, errors.Wrap(err, "failed to connect to Redis")
		}

		b, err := document.NewRedis(&document.RedisConfig{RedisClient: redisClient})
		if err != nil {
			redisClient.Close()
			return nil, nil, err
		}
		backend = b
		closer = func() { redisClient.Close() }

	case config.BackendBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.Store.BoltPath), 0o755); err != nil {
			return nil, nil, errors.Wrap(err, "failed to create database directory")
		}

		b, err := document.NewBolt(&document.BoltConfig{Path: cfg.Store.BoltPath})
		if err != nil {
			return nil, nil, err
		}
		backend = b
		closer = func() { b.Close() }

	default:
		b, err := document.NewFile(&document.FileConfig{Dir: cfg.Store.DataDir})
		if err != nil {
			return nil, nil, err
		}
		backend = b
	}

	store, err := document.New(&document.Config{Backend: backend})
	if err != nil {
		closer()
		return nil, nil, err
	}

	log.Info().Str("backend", cfg.Store.Backend).Msg("Opened document store")
	return store, closer, nil
}

// newRewardsService wires the reward ledger onto the store
func newRewardsService(store document.Store, cfg *config.Config) (rewards.Service, error) {
	completionRepository, err := completion.NewDocument(&completion.Config{Store: store})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create completion repository")
	}

	pointsRepository, err := points.NewDocument(&points.Config{Store: store})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create points repository")
	}

	svc, err := rewards.New(&rewards.Config{
		CompletionRepo:      completionRepository,
		PointsRepo:          pointsRepository,
		CompletionBonus:     cfg.Rewards.CompletionBonus,
		CompletionsPerBonus: cfg.Rewards.CompletionsPerBonus,
		LeaderboardSize:     cfg.Rewards.LeaderboardSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create rewards service")
	}

	return svc, nil
}
