package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestOTPErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{"ErrOTPNotFound", ErrOTPNotFound, "otp not found"},
		{"ErrOTPExpired", ErrOTPExpired, "otp has expired"},
		{"ErrOTPAlreadyUsed", ErrOTPAlreadyUsed, "otp already used"},
		{"ErrOTPInvalid", ErrOTPInvalid, "invalid otp code"},
		{"ErrOTPMaxAttempts", ErrOTPMaxAttempts, "maximum otp attempts exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected error message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
		})
	}
}

func TestErrorIdentity(t *testing.T) {
	all := []error{
		ErrInvalidPhone, ErrInvalidOTPFormat, ErrWeakPassword, ErrEmptyIdentifier,
		ErrOTPNotFound, ErrOTPExpired, ErrOTPAlreadyUsed, ErrOTPInvalid,
		ErrOTPMaxAttempts,
		ErrTokenInvalid, ErrTokenExpired, ErrTokenMalformed,
		ErrUserNotFound,
		ErrSMSSendFailed, ErrEmailSendFailed,
		ErrDeliveryNotFound, ErrDeliveryNotResendable,
		ErrFileTypeNotAllowed, ErrStorageUnavailable,
	}

	// Every sentinel must be distinct so error switches at the HTTP
	// boundary cannot conflate reasons.
	seen := make(map[string]error, len(all))
	for _, err := range all {
		if prev, ok := seen[err.Error()]; ok {
			t.Errorf("duplicate error message %q shared by %v and %v", err.Error(), prev, err)
		}
		seen[err.Error()] = err
	}
}

func TestErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("verify failed: %w", ErrOTPExpired)

	if !errors.Is(wrapped, ErrOTPExpired) {
		t.Error("wrapped error should match sentinel via errors.Is")
	}
	if errors.Is(wrapped, ErrOTPInvalid) {
		t.Error("wrapped error should not match a different sentinel")
	}
}
