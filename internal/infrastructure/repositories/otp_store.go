package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/schoolauth/domain"
)

// expiryGrace keeps a record in Redis slightly past its own expiry so the
// verifier can still report "expired" instead of "not found".
const expiryGrace = time.Minute

// RedisOTPStore implements domain.OTPStore using Redis persistence
type RedisOTPStore struct {
	client *redis.Client
	prefix string
}

// NewRedisOTPStore creates a new Redis-backed OTP store
func NewRedisOTPStore(client *redis.Client) domain.OTPStore {
	return &RedisOTPStore{
		client: client,
		prefix: "otp:",
	}
}

// Get implements domain.OTPStore
func (s *RedisOTPStore) Get(ctx context.Context, identifier string) (*domain.OTPRecord, error) {
	data, err := s.client.Get(ctx, s.prefix+identifier).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrOTPNotFound
		}
		return nil, fmt.Errorf("failed to get OTP record from Redis: %w", err)
	}

	var record domain.OTPRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal OTP record: %w", err)
	}
	return &record, nil
}

// Put implements domain.OTPStore. An existing record for the same
// identifier is overwritten.
func (s *RedisOTPStore) Put(ctx context.Context, record *domain.OTPRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal OTP record: %w", err)
	}

	ttl := time.Until(record.ExpiresAt) + expiryGrace
	if ttl <= 0 {
		ttl = expiryGrace
	}

	return s.client.Set(ctx, s.prefix+record.Identifier, data, ttl).Err()
}

// Delete implements domain.OTPStore
func (s *RedisOTPStore) Delete(ctx context.Context, identifier string) error {
	return s.client.Del(ctx, s.prefix+identifier).Err()
}
