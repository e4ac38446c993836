package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dukapro/dukapro/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore maps session tokens to user ids with a TTL. Tokens are
// opaque UUIDs; the cookie value is the only place they live client-side.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (r *RedisSessionStore) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	key := sessionKeyPrefix + token

	if err := r.client.Set(ctx, key, userID, r.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (r *RedisSessionStore) Get(ctx context.Context, token string) (int64, error) {
	val, err := r.client.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrNoSession
	}
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, domain.ErrNoSession
	}
	return userID, nil
}

func (r *RedisSessionStore) Refresh(ctx context.Context, token string) error {
	return r.client.Expire(ctx, sessionKeyPrefix+token, r.ttl).Err()
}

func (r *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKeyPrefix+token).Err()
}
