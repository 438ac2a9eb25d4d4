package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
)

const keyPrefix = "verigate:session:"

// RedisStore keeps session state in Redis so that several instances share it.
// Each session is a single string key with a sliding TTL refreshed on Set.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, error) {
	email, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return email, err
}

func (s *RedisStore) Set(ctx context.Context, sessionID, email string) error {
	return s.client.Set(ctx, keyPrefix+sessionID, email, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}

var _ ports.SessionStore = (*RedisStore)(nil)
