package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var errTokenMissing = errors.New("token not found")

// TokenStore keeps short-lived single-use tokens.
type TokenStore interface {
	Save(ctx context.Context, key, value string, ttl time.Duration) error
	// Take returns the value and removes it atomically.
	Take(ctx context.Context, key string) (string, error)
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func (s *redisTokenStore) Save(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisTokenStore) Take(ctx context.Context, key string) (string, error) {
	val, err := s.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errTokenMissing
	}
	return val, err
}
