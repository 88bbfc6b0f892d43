package mocks

import "github.com/you/schoolauth/domain"

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateResetTokenFunc  func(identifier string, userID uint) (string, error)
	ValidateResetTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateAccessTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateResetToken mints a reset credential
func (m *MockTokenService) GenerateResetToken(identifier string, userID uint) (string, error) {
	if m.GenerateResetTokenFunc != nil {
		return m.GenerateResetTokenFunc(identifier, userID)
	}
	return "mock_reset_token", nil
}

// ValidateResetToken validates a reset credential
func (m *MockTokenService) ValidateResetToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateResetTokenFunc != nil {
		return m.ValidateResetTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// ValidateAccessToken validates an admin access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
