package mocks

import (
	"context"

	"github.com/you/schoolauth/domain"
)

// MockSMSSender implements domain.SMSSender interface for testing
type MockSMSSender struct {
	SendFunc func(ctx context.Context, to, message string) (string, error)

	SentTo       []string
	SentMessages []string
}

// NewMockSMSSender creates a new MockSMSSender with default behaviors
func NewMockSMSSender() *MockSMSSender {
	return &MockSMSSender{}
}

// Send submits an SMS message
func (m *MockSMSSender) Send(ctx context.Context, to, message string) (string, error) {
	m.SentTo = append(m.SentTo, to)
	m.SentMessages = append(m.SentMessages, message)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, message)
	}
	// Default behavior: success (no actual SMS sent in tests)
	return "", nil
}

// MockEmailSender implements domain.EmailSender interface for testing
type MockEmailSender struct {
	SendFunc func(to, subject, body string) error

	SentTo []string
}

// NewMockEmailSender creates a new MockEmailSender with default behaviors
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

// Send submits an email message
func (m *MockEmailSender) Send(to, subject, body string) error {
	m.SentTo = append(m.SentTo, to)
	if m.SendFunc != nil {
		return m.SendFunc(to, subject, body)
	}
	return nil
}

// Compile-time interface compliance verification
var (
	_ domain.SMSSender   = (*MockSMSSender)(nil)
	_ domain.EmailSender = (*MockEmailSender)(nil)
)
