package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the token in Redis so that several client processes on
// the same account share one session. Expiry is delegated to the key TTL.
type RedisStore struct {
	redis *redis.Client
	key   string
}

// NewRedisStore creates a store using the provided client. An empty key
// falls back to DefaultKey.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if client == nil {
		panic("storage.NewRedisStore: redis client is nil")
	}
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{redis: client, key: key}
}

func (r *RedisStore) Get(ctx context.Context) (string, bool, error) {
	token, err := r.redis.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Set stores token with the given ttl. A ttl <= 0 keeps the key until Clear.
func (r *RedisStore) Set(ctx context.Context, token string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.redis.Set(ctx, r.key, token, ttl).Err()
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.redis.Del(ctx, r.key).Err()
}
