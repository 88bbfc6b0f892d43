package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/you/schoolauth/domain"
)

// OTPServiceImpl implements domain.OTPService on top of an injected store
type OTPServiceImpl struct {
	store  domain.OTPStore
	config OTPConfig
}

type OTPConfig struct {
	Length      int
	TTL         time.Duration
	MaxAttempts int
}

// NewOTPService creates a new OTP service
func NewOTPService(store domain.OTPStore, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		store:  store,
		config: config,
	}
}

// Issue implements domain.OTPService. Any existing record for the
// identifier is overwritten, so at most one code is active at a time.
func (s *OTPServiceImpl) Issue(ctx context.Context, identifier string) (*domain.OTPRecord, error) {
	if identifier == "" {
		return nil, domain.ErrEmptyIdentifier
	}

	now := time.Now()

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	record := &domain.OTPRecord{
		Identifier: identifier,
		Code:       code,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.config.TTL),
		Attempts:   0,
		Verified:   false,
	}

	if err := s.store.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store OTP record: %w", err)
	}

	return record, nil
}

// Verify implements domain.OTPService. Check order: presence, expiry,
// already-used, attempt cap, then code comparison. An expired record never
// consumes an attempt, and once the cap is reached even the correct code
// fails.
func (s *OTPServiceImpl) Verify(ctx context.Context, identifier, code string) error {
	record, err := s.store.Get(ctx, identifier)
	if err != nil {
		return err
	}

	now := time.Now()

	if record.Expired(now) {
		// treated as consumed
		if err := s.store.Delete(ctx, identifier); err != nil {
			return fmt.Errorf("failed to discard expired OTP record: %w", err)
		}
		return domain.ErrOTPExpired
	}

	if record.Verified {
		return domain.ErrOTPAlreadyUsed
	}

	if record.Attempts >= s.config.MaxAttempts {
		return domain.ErrOTPMaxAttempts
	}

	if record.Code != code {
		record.Attempts++
		if err := s.store.Put(ctx, record); err != nil {
			return fmt.Errorf("failed to record OTP attempt: %w", err)
		}
		return domain.ErrOTPInvalid
	}

	// Success: the record becomes terminal but stays in the store until
	// explicitly consumed, so a replay reports "already used".
	record.Verified = true
	if err := s.store.Put(ctx, record); err != nil {
		return fmt.Errorf("failed to mark OTP verified: %w", err)
	}

	return nil
}

// Consume implements domain.OTPService, deleting the record after the
// password update it guarded has completed.
func (s *OTPServiceImpl) Consume(ctx context.Context, identifier string) error {
	return s.store.Delete(ctx, identifier)
}

// generateSecureCode draws each decimal digit independently with uniform
// randomness.
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
