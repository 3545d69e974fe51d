package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotelbooking/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps pending reservations as JSON values that expire with the
// session lifetime.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, userID int64, p *domain.PendingReservation) error {
	buf, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(userID), buf, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (*domain.PendingReservation, error) {
	buf, err := s.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var p domain.PendingReservation
	if err := json.Unmarshal(buf, &p); err != nil {
		return nil, fmt.Errorf("decode pending reservation: %w", err)
	}
	return &p, nil
}

func (s *RedisStore) Clear(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, key(userID)).Err()
}
