package document

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	documentKeyPrefix = "focusbot:document:"
)

// RedisConfig holds configuration for the Redis backend
type RedisConfig struct {
	// Redis client
	RedisClient *redis.Client
}

// redisBackend keeps each document as a Redis string
type redisBackend struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed document backend
func NewRedis(cfg *RedisConfig) (*redisBackend, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	return &redisBackend{
		client: cfg.RedisClient,
	}, nil
}

// Read fetches the document from Redis
func (b *redisBackend) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, documentKeyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrDocumentNotFound
		}
		return nil, errors.Wrap(err, "failed to get document")
	}

	return data, nil
}

// Write stores the document in Redis with no expiration
func (b *redisBackend) Write(ctx context.Context, key string, data []byte) error {
	if err := b.client.Set(ctx, documentKeyPrefix+key, data, 0).Err(); err != nil {
		return errors.Wrap(err, "failed to set document")
	}
	return nil
}
