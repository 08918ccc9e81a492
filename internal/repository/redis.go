package repository

import (
	"context"
	"time"

	"github.com/hypergate/hypergate/internal/config"
	"github.com/hypergate/hypergate/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis per config. A failed ping is reported but
// not fatal; callers fall back to in-memory stores.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, falling back to in-memory stores", "addr", cfg.Addr, "error", err)
		return nil
	}

	return client
}
