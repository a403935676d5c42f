package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meltemk/skyticket/config"
)

type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(cfg config.RedisConfig, ttl time.Duration) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (r *RedisRepository) Get(ctx context.Context, sessionID, key string) (string, error) {
	value, err := r.client.Get(ctx, sessionKey(sessionID, key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (r *RedisRepository) Set(ctx context.Context, sessionID, key, value string) error {
	return r.client.Set(ctx, sessionKey(sessionID, key), value, r.ttl).Err()
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string, keys ...string) error {
	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = sessionKey(sessionID, key)
	}
	return r.client.Del(ctx, fullKeys...).Err()
}

func (r *RedisRepository) Clear(ctx context.Context, sessionID string) error {
	return r.Delete(ctx, sessionID, allKeys...)
}

func sessionKey(sessionID, key string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, key)
}

var _ Repository = (*RedisRepository)(nil)
