package mocks

import (
	"context"
	"io"

	"github.com/you/schoolauth/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc   func(ctx context.Context, identifier string) (*domain.OTPRecord, error)
	VerifyFunc  func(ctx context.Context, identifier, code string) error
	ConsumeFunc func(ctx context.Context, identifier string) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue generates and stores an OTP record
func (m *MockOTPService) Issue(ctx context.Context, identifier string) (*domain.OTPRecord, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, identifier)
	}
	return &domain.OTPRecord{Identifier: identifier, Code: "123456"}, nil
}

// Verify checks a submitted code
func (m *MockOTPService) Verify(ctx context.Context, identifier, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, identifier, code)
	}
	return nil
}

// Consume deletes a verified record
func (m *MockOTPService) Consume(ctx context.Context, identifier string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, identifier)
	}
	return nil
}

// MockResetService implements domain.ResetService interface for testing
type MockResetService struct {
	RequestResetFunc   func(ctx context.Context, phone, username string) error
	ConfirmResetFunc   func(ctx context.Context, phone, code, newPassword string) error
	VerifyOTPFunc      func(ctx context.Context, identifier, code string) (*domain.VerifiedReset, error)
	ResetWithTokenFunc func(ctx context.Context, token, newPassword string) error
}

// NewMockResetService creates a new MockResetService with default behaviors
func NewMockResetService() *MockResetService {
	return &MockResetService{}
}

// RequestReset starts a password reset
func (m *MockResetService) RequestReset(ctx context.Context, phone, username string) error {
	if m.RequestResetFunc != nil {
		return m.RequestResetFunc(ctx, phone, username)
	}
	return nil
}

// ConfirmReset verifies an OTP and updates the password
func (m *MockResetService) ConfirmReset(ctx context.Context, phone, code, newPassword string) error {
	if m.ConfirmResetFunc != nil {
		return m.ConfirmResetFunc(ctx, phone, code, newPassword)
	}
	return nil
}

// VerifyOTP verifies an OTP and mints a reset credential
func (m *MockResetService) VerifyOTP(ctx context.Context, identifier, code string) (*domain.VerifiedReset, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, identifier, code)
	}
	return &domain.VerifiedReset{ResetToken: "mock_reset_token", UserID: 1}, nil
}

// ResetWithToken consumes a reset credential and updates the password
func (m *MockResetService) ResetWithToken(ctx context.Context, token, newPassword string) error {
	if m.ResetWithTokenFunc != nil {
		return m.ResetWithTokenFunc(ctx, token, newPassword)
	}
	return nil
}

// MockDeliveryService implements domain.DeliveryService interface for testing
type MockDeliveryService struct {
	HandleReportFunc func(ctx context.Context, providerMessageID, recipient, status string) error
	ListFunc         func(ctx context.Context, limit, offset int) ([]domain.DeliveryRecord, error)
	ResendFunc       func(ctx context.Context, id uint) error
}

// NewMockDeliveryService creates a new MockDeliveryService with default behaviors
func NewMockDeliveryService() *MockDeliveryService {
	return &MockDeliveryService{}
}

// HandleReport applies a delivery report
func (m *MockDeliveryService) HandleReport(ctx context.Context, providerMessageID, recipient, status string) error {
	if m.HandleReportFunc != nil {
		return m.HandleReportFunc(ctx, providerMessageID, recipient, status)
	}
	return nil
}

// List returns delivery records
func (m *MockDeliveryService) List(ctx context.Context, limit, offset int) ([]domain.DeliveryRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return nil, nil
}

// Resend re-submits a failed message
func (m *MockDeliveryService) Resend(ctx context.Context, id uint) error {
	if m.ResendFunc != nil {
		return m.ResendFunc(ctx, id)
	}
	return nil
}

// MockFileStorage implements domain.FileStorage interface for testing
type MockFileStorage struct {
	UploadFunc func(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)

	UploadedNames []string
}

// NewMockFileStorage creates a new MockFileStorage with default behaviors
func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{}
}

// Upload stores an object
func (m *MockFileStorage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	m.UploadedNames = append(m.UploadedNames, objectName)
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, objectName, reader, size, contentType)
	}
	return "https://cdn.example.com/photos/" + objectName, nil
}

// Compile-time interface compliance verification
var (
	_ domain.OTPService      = (*MockOTPService)(nil)
	_ domain.ResetService    = (*MockResetService)(nil)
	_ domain.DeliveryService = (*MockDeliveryService)(nil)
	_ domain.FileStorage     = (*MockFileStorage)(nil)
)
