// Package cache holds short-lived copies of API responses that every visitor
// shares (brawler catalog, event rotation). Writes overwrite; last writer wins.
package cache

import (
	"context"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/config"

	"github.com/rs/zerolog"
)

type Cache interface {
	// Get decodes the value stored at key into dest. It reports false when
	// the key is missing or expired.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// New returns a redis cache when REDIS_ADDR is configured and an in-process
// one otherwise.
func New(cfg *config.Config, logger zerolog.Logger) (Cache, error) {
	if cfg.RedisAddr == "" {
		logger.Info().Msg("redis not configured, using in-memory cache")
		return NewMemory(time.Now), nil
	}
	r, err := NewRedis(cfg.RedisAddr, cfg.RedisDB, logger)
	if err != nil {
		return nil, err
	}
	return r, nil
}
