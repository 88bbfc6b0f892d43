package mocks

import (
	"context"

	"github.com/you/schoolauth/domain"
)

// MockDeliveryRepository implements domain.DeliveryRepository for testing
type MockDeliveryRepository struct {
	CreateFunc                  func(ctx context.Context, record *domain.DeliveryRecord) error
	FindByIDFunc                func(ctx context.Context, id uint) (*domain.DeliveryRecord, error)
	FindByProviderMessageIDFunc func(ctx context.Context, providerMessageID string) (*domain.DeliveryRecord, error)
	UpdateFunc                  func(ctx context.Context, record *domain.DeliveryRecord) error
	ListFunc                    func(ctx context.Context, limit, offset int) ([]domain.DeliveryRecord, error)

	Created []domain.DeliveryRecord
	Updated []domain.DeliveryRecord
}

// NewMockDeliveryRepository creates a new MockDeliveryRepository
func NewMockDeliveryRepository() *MockDeliveryRepository {
	return &MockDeliveryRepository{}
}

// Create records a new delivery entry
func (m *MockDeliveryRepository) Create(ctx context.Context, record *domain.DeliveryRecord) error {
	m.Created = append(m.Created, *record)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return nil
}

// FindByID looks up a delivery record by id
func (m *MockDeliveryRepository) FindByID(ctx context.Context, id uint) (*domain.DeliveryRecord, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrDeliveryNotFound
}

// FindByProviderMessageID looks up a delivery record by provider message id
func (m *MockDeliveryRepository) FindByProviderMessageID(ctx context.Context, providerMessageID string) (*domain.DeliveryRecord, error) {
	if m.FindByProviderMessageIDFunc != nil {
		return m.FindByProviderMessageIDFunc(ctx, providerMessageID)
	}
	return nil, domain.ErrDeliveryNotFound
}

// Update mutates an existing delivery record
func (m *MockDeliveryRepository) Update(ctx context.Context, record *domain.DeliveryRecord) error {
	m.Updated = append(m.Updated, *record)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, record)
	}
	return nil
}

// List returns delivery records
func (m *MockDeliveryRepository) List(ctx context.Context, limit, offset int) ([]domain.DeliveryRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.DeliveryRepository = (*MockDeliveryRepository)(nil)
