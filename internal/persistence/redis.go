package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/skill-swap-service/internal/config"
)

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// GetCached returns the cached payload for key, or false when absent
// or when Redis is unreachable.
func (r *Redis) GetCached(ctx context.Context, key string) ([]byte, bool) {
	if r == nil || r.Client == nil {
		return nil, false
	}
	val, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// SetCached stores a payload under key with the given TTL. Failures are
// ignored; the cache is best effort.
func (r *Redis) SetCached(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if r == nil || r.Client == nil || ttl <= 0 {
		return
	}
	_ = r.Client.Set(ctx, key, payload, ttl).Err()
}

// Invalidate removes keys from the cache.
func (r *Redis) Invalidate(ctx context.Context, keys ...string) {
	if r == nil || r.Client == nil || len(keys) == 0 {
		return
	}
	_ = r.Client.Del(ctx, keys...).Err()
}
