package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "refresh:"

type redisTokenStore struct {
	rdb *redis.Client
}

// NewRedisTokenStore builds a TokenStore on Redis. Tokens expire on their
// own; Revoke only shortens that.
func NewRedisTokenStore(rdb *redis.Client) TokenStore {
	return &redisTokenStore{rdb: rdb}
}

func (s *redisTokenStore) Save(ctx context.Context, token string, accountID int64, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, refreshKeyPrefix+token, accountID, ttl).Err(); err != nil {
		return fmt.Errorf("saving refresh token: %w", err)
	}
	return nil
}

func (s *redisTokenStore) Lookup(ctx context.Context, token string) (int64, error) {
	val, err := s.rdb.Get(ctx, refreshKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrInvalidCredentials
		}
		return 0, fmt.Errorf("looking up refresh token: %w", err)
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt refresh token value: %w", err)
	}
	return id, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, refreshKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("revoking refresh token: %w", err)
	}
	return nil
}
