package services

import (
	"context"
	"testing"
	"time"

	"github.com/you/schoolauth/domain"
	"github.com/you/schoolauth/internal/infrastructure/repositories"
)

func newOTPServiceForTest(t *testing.T, cfg OTPConfig) (domain.OTPService, domain.OTPStore) {
	t.Helper()

	if cfg.Length == 0 {
		cfg.Length = 6
	}
	if cfg.TTL == 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}

	store := repositories.NewMemoryOTPStore()
	return NewOTPService(store, cfg), store
}

func TestOTPService_IssueGeneratesDigits(t *testing.T) {
	svc, _ := newOTPServiceForTest(t, OTPConfig{Length: 6})
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		record, err := svc.Issue(ctx, "256700000000")
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		if len(record.Code) != 6 {
			t.Fatalf("expected code length 6, got %d (%q)", len(record.Code), record.Code)
		}
		for _, c := range record.Code {
			if c < '0' || c > '9' {
				t.Fatalf("expected decimal digits, got %q", record.Code)
			}
		}
		if record.Attempts != 0 {
			t.Errorf("expected attempts 0, got %d", record.Attempts)
		}
		if record.Verified {
			t.Error("expected a fresh record to be unverified")
		}
	}
}

func TestOTPService_IssueConfiguredLength(t *testing.T) {
	svc, _ := newOTPServiceForTest(t, OTPConfig{Length: 4})

	record, err := svc.Issue(context.Background(), "256700000000")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if len(record.Code) != 4 {
		t.Errorf("expected code length 4, got %d", len(record.Code))
	}
}

func TestOTPService_IssueEmptyIdentifier(t *testing.T) {
	svc, _ := newOTPServiceForTest(t, OTPConfig{})

	if _, err := svc.Issue(context.Background(), ""); err != domain.ErrEmptyIdentifier {
		t.Errorf("expected ErrEmptyIdentifier, got %v", err)
	}
}

func TestOTPService_RoundTrip(t *testing.T) {
	svc, _ := newOTPServiceForTest(t, OTPConfig{})
	ctx := context.Background()

	record, err := svc.Issue(ctx, "256700000000")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Immediate verification with the exact code succeeds exactly once.
	if err := svc.Verify(ctx, "256700000000", record.Code); err != nil {
		t.Fatalf("expected successful verification, got %v", err)
	}

	// A replay of the same code fails with "already used".
	if err := svc.Verify(ctx, "256700000000", record.Code); err != domain.ErrOTPAlreadyUsed {
		t.Errorf("expected ErrOTPAlreadyUsed on replay, got %v", err)
	}
}

func TestOTPService_VerifyUnknownIdentifier(t *testing.T) {
	svc, _ := newOTPServiceForTest(t, OTPConfig{})

	if err := svc.Verify(context.Background(), "256700000000", "123456"); err != domain.ErrOTPNotFound {
		t.Errorf("expected ErrOTPNotFound, got %v", err)
	}
}

func TestOTPService_VerifyExpired(t *testing.T) {
	svc, store := newOTPServiceForTest(t, OTPConfig{})
	ctx := context.Background()

	record, err := svc.Issue(ctx, "256700000000")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Backdate the record past its expiry.
	record.CreatedAt = time.Now().Add(-10 * time.Minute)
	record.ExpiresAt = time.Now().Add(-5 * time.Minute)
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Even the correct code fails once expired.
	if err := svc.Verify(ctx, "256700000000", record.Code); err != domain.ErrOTPExpired {
		t.Errorf("expected ErrOTPExpired, got %v", err)
	}

	// The expired record is treated as consumed.
	if err := svc.Verify(ctx, "256700000000", record.Code); err != domain.ErrOTPNotFound {
		t.Errorf("expected ErrOTPNotFound after expiry consumption, got %v", err)
	}
}

func TestOTPService_ExpiredDoesNotConsumeAttempt(t *testing.T) {
	svc, store := newOTPServiceForTest(t, OTPConfig{})
	ctx := context.Background()

	record, err := svc.Issue(ctx, "256700000000")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	record.ExpiresAt = time.Now().Add(-time.Second)
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Expiry check precedes attempt accounting: wrong code against an
	// expired record reports expiry, not an attempt.
	if err := svc.Verify(ctx, "256700000000", "000000"); err != domain.ErrOTPExpired {
		t.Errorf("expected ErrOTPExpired, got %v", err)
	}
}

func TestOTPService_MaxAttempts(t *testing.T) {
	svc, _ := newOTPServiceForTest(t, OTPConfig{MaxAttempts: 3})
	ctx := context.Background()

	record, err := svc.Issue(ctx, "256700000000")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := svc.Verify(ctx, "256700000000", "000000"); err != domain.ErrOTPInvalid {
			t.Fatalf("attempt %d: expected ErrOTPInvalid, got %v", i+1, err)
		}
	}

	// After maxAttempts wrong submissions even the correct code fails.
	if err := svc.Verify(ctx, "256700000000", record.Code); err != domain.ErrOTPMaxAttempts {
		t.Errorf("expected ErrOTPMaxAttempts for correct code after cap, got %v", err)
	}
}

func TestOTPService_ReissueInvalidatesOldCode(t *testing.T) {
	svc, _ := newOTPServiceForTest(t, OTPConfig{})
	ctx := context.Background()

	first, err := svc.Issue(ctx, "256700000000")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	second, err := svc.Issue(ctx, "256700000000")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if first.Code != second.Code {
		// The old code must no longer verify.
		if err := svc.Verify(ctx, "256700000000", first.Code); err != domain.ErrOTPInvalid {
			t.Errorf("expected old code to be invalid, got %v", err)
		}
	}

	if err := svc.Verify(ctx, "256700000000", second.Code); err != nil {
		t.Errorf("expected new code to verify, got %v", err)
	}
}

func TestOTPService_ImmediateReissueOverwritesPendingRecord(t *testing.T) {
	svc, store := newOTPServiceForTest(t, OTPConfig{})
	ctx := context.Background()

	if _, err := svc.Issue(ctx, "256772611854"); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// A fresh pending record must not block reissuance; the second issue
	// replaces it.
	second, err := svc.Issue(ctx, "256772611854")
	if err != nil {
		t.Fatalf("second Issue failed instead of overwriting: %v", err)
	}

	stored, err := store.Get(ctx, "256772611854")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.Code != second.Code {
		t.Errorf("expected stored code %q, got %q", second.Code, stored.Code)
	}
	if stored.Attempts != 0 || stored.Verified {
		t.Errorf("expected a fresh pending record, got attempts=%d verified=%v", stored.Attempts, stored.Verified)
	}
}

func TestOTPService_AttemptCountingScenario(t *testing.T) {
	svc, store := newOTPServiceForTest(t, OTPConfig{})
	ctx := context.Background()

	record, err := svc.Issue(ctx, "256700000000")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	stored, err := store.Get(ctx, "256700000000")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.Attempts != 0 {
		t.Fatalf("expected attempts 0 after issuance, got %d", stored.Attempts)
	}

	if err := svc.Verify(ctx, "256700000000", "000000"); err != domain.ErrOTPInvalid {
		t.Fatalf("expected ErrOTPInvalid for wrong code, got %v", err)
	}

	stored, err = store.Get(ctx, "256700000000")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.Attempts != 1 {
		t.Errorf("expected attempts 1 after one wrong code, got %d", stored.Attempts)
	}

	if err := svc.Verify(ctx, "256700000000", record.Code); err != nil {
		t.Fatalf("expected correct code to verify, got %v", err)
	}

	// Consumption removes the record entirely.
	if err := svc.Consume(ctx, "256700000000"); err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if _, err := store.Get(ctx, "256700000000"); err != domain.ErrOTPNotFound {
		t.Errorf("expected record gone after consumption, got %v", err)
	}
}
