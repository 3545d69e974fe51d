package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

func otpKey(phone, token string) string {
	return fmt.Sprintf("otp:%s:%s", phone, token)
}

type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func (s *RedisOTPStore) Save(ctx context.Context, phone, token string, e OTPEntry, ttl time.Duration) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, otpKey(phone, token), b, ttl).Err()
}

func (s *RedisOTPStore) Get(ctx context.Context, phone, token string) (*OTPEntry, error) {
	b, err := s.client.Get(ctx, otpKey(phone, token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrOTPNotFound
	}
	if err != nil {
		return nil, err
	}
	var e OTPEntry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("decode otp entry: %w", err)
	}
	return &e, nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, phone, token string) error {
	return s.client.Del(ctx, otpKey(phone, token)).Err()
}

type memoryOTP struct {
	entry   OTPEntry
	expires time.Time
}

// MemoryOTPStore keeps codes in process when Redis is not configured.
type MemoryOTPStore struct {
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memoryOTP
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{now: time.Now, entries: make(map[string]memoryOTP)}
}

func (s *MemoryOTPStore) Save(_ context.Context, phone, token string, e OTPEntry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[otpKey(phone, token)] = memoryOTP{entry: e, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryOTPStore) Get(_ context.Context, phone, token string) (*OTPEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := otpKey(phone, token)
	m, ok := s.entries[k]
	if !ok {
		return nil, ErrOTPNotFound
	}
	if !s.now().Before(m.expires) {
		delete(s.entries, k)
		return nil, ErrOTPNotFound
	}
	e := m.entry
	return &e, nil
}

func (s *MemoryOTPStore) Delete(_ context.Context, phone, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, otpKey(phone, token))
	return nil
}
