package repositories

import (
	"context"
	"sync"

	"github.com/you/schoolauth/domain"
)

// MemoryOTPStore implements domain.OTPStore with an in-process map. Used in
// tests and redis-less deployments; a multi-instance deployment needs the
// Redis-backed store.
type MemoryOTPStore struct {
	mu      sync.RWMutex
	records map[string]domain.OTPRecord
}

// NewMemoryOTPStore creates a new in-memory OTP store
func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{
		records: make(map[string]domain.OTPRecord),
	}
}

// Get implements domain.OTPStore
func (s *MemoryOTPStore) Get(ctx context.Context, identifier string) (*domain.OTPRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[identifier]
	if !ok {
		return nil, domain.ErrOTPNotFound
	}
	copied := record
	return &copied, nil
}

// Put implements domain.OTPStore. An existing record for the same
// identifier is overwritten.
func (s *MemoryOTPStore) Put(ctx context.Context, record *domain.OTPRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Identifier] = *record
	return nil
}

// Delete implements domain.OTPStore
func (s *MemoryOTPStore) Delete(ctx context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, identifier)
	return nil
}

var _ domain.OTPStore = (*MemoryOTPStore)(nil)
