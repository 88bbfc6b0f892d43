package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/you/schoolauth/domain"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	t.Cleanup(func() {
		mr.Close()
	})

	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func testRecord(identifier string) *domain.OTPRecord {
	now := time.Now()
	return &domain.OTPRecord{
		Identifier: identifier,
		Code:       "123456",
		CreatedAt:  now,
		ExpiresAt:  now.Add(5 * time.Minute),
		Attempts:   0,
		Verified:   false,
	}
}

func TestRedisOTPStore_PutGet(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisOTPStore(client)
	ctx := context.Background()

	record := testRecord("256772611854")
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "256772611854")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Code != record.Code {
		t.Errorf("expected code %q, got %q", record.Code, got.Code)
	}
	if got.Attempts != 0 {
		t.Errorf("expected attempts 0, got %d", got.Attempts)
	}
	if got.Verified {
		t.Error("expected record to be unverified")
	}

	// TTL must be set on the key so abandoned records are garbage collected
	ttl := client.TTL(ctx, "otp:256772611854").Val()
	if ttl <= 0 {
		t.Error("expected a positive TTL on the OTP key")
	}
}

func TestRedisOTPStore_GetMissing(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisOTPStore(client)

	_, err := store.Get(context.Background(), "256700000000")
	if err != domain.ErrOTPNotFound {
		t.Errorf("expected ErrOTPNotFound, got %v", err)
	}
}

func TestRedisOTPStore_Overwrite(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisOTPStore(client)
	ctx := context.Background()

	first := testRecord("256772611854")
	first.Code = "111111"
	if err := store.Put(ctx, first); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	second := testRecord("256772611854")
	second.Code = "222222"
	if err := store.Put(ctx, second); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "256772611854")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Code != "222222" {
		t.Errorf("expected overwritten code 222222, got %q", got.Code)
	}
}

func TestRedisOTPStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisOTPStore(client)
	ctx := context.Background()

	if err := store.Put(ctx, testRecord("256772611854")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Delete(ctx, "256772611854"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Get(ctx, "256772611854"); err != domain.ErrOTPNotFound {
		t.Errorf("expected ErrOTPNotFound after delete, got %v", err)
	}
}

func TestRedisOTPStore_ExpiredRecordStillReadable(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisOTPStore(client)
	ctx := context.Background()

	// A record already past its expiresAt is still stored within the grace
	// window so the verifier can distinguish "expired" from "not found".
	record := testRecord("256772611854")
	record.ExpiresAt = time.Now().Add(-time.Second)
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "256772611854")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.Expired(time.Now()) {
		t.Error("expected record to report expired")
	}
}

func TestMemoryOTPStore_RoundTrip(t *testing.T) {
	store := NewMemoryOTPStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "256772611854"); err != domain.ErrOTPNotFound {
		t.Errorf("expected ErrOTPNotFound, got %v", err)
	}

	record := testRecord("256772611854")
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "256772611854")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// The store must hand out copies; mutating the result must not touch
	// the stored record.
	got.Attempts = 99
	again, err := store.Get(ctx, "256772611854")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if again.Attempts != 0 {
		t.Errorf("stored record mutated through returned pointer, attempts = %d", again.Attempts)
	}

	if err := store.Delete(ctx, "256772611854"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "256772611854"); err != domain.ErrOTPNotFound {
		t.Errorf("expected ErrOTPNotFound after delete, got %v", err)
	}
}
