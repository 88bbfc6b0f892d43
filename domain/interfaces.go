package domain

import (
	"context"
	"io"
)

// OTPStore defines keyed ephemeral storage for OTP records. Pure key-value
// semantics: it does not enforce expiry eviction itself, that is the
// verifier's job.
type OTPStore interface {
	Get(ctx context.Context, identifier string) (*OTPRecord, error)
	Put(ctx context.Context, record *OTPRecord) error
	Delete(ctx context.Context, identifier string) error
}

// OTPService defines OTP issuance and verification operations
type OTPService interface {
	Issue(ctx context.Context, identifier string) (*OTPRecord, error)
	Verify(ctx context.Context, identifier, code string) error
	Consume(ctx context.Context, identifier string) error
}

// ResetService defines the password-reset business logic
type ResetService interface {
	RequestReset(ctx context.Context, phone, username string) error
	ConfirmReset(ctx context.Context, phone, code, newPassword string) error
	VerifyOTP(ctx context.Context, identifier, code string) (*VerifiedReset, error)
	ResetWithToken(ctx context.Context, token, newPassword string) error
}

// DeliveryService defines SMS delivery-report reconciliation operations
type DeliveryService interface {
	HandleReport(ctx context.Context, providerMessageID, recipient, status string) error
	List(ctx context.Context, limit, offset int) ([]DeliveryRecord, error)
	Resend(ctx context.Context, id uint) error
}

// UserRepository defines user data access operations
type UserRepository interface {
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
}

// DeliveryRepository defines delivery audit trail access operations.
// Records are append/update only; there is no delete.
type DeliveryRepository interface {
	Create(ctx context.Context, record *DeliveryRecord) error
	FindByID(ctx context.Context, id uint) (*DeliveryRecord, error)
	FindByProviderMessageID(ctx context.Context, providerMessageID string) (*DeliveryRecord, error)
	Update(ctx context.Context, record *DeliveryRecord) error
	List(ctx context.Context, limit, offset int) ([]DeliveryRecord, error)
}

// SMSSender defines the outbound SMS transport. On success it may return a
// provider-assigned message id used for delivery-report reconciliation.
type SMSSender interface {
	Send(ctx context.Context, to, message string) (providerMessageID string, err error)
}

// EmailSender defines the outbound email transport
type EmailSender interface {
	Send(to, subject, body string) error
}

// TokenService defines signed token operations
type TokenService interface {
	GenerateResetToken(identifier string, userID uint) (string, error)
	ValidateResetToken(token string) (*TokenClaims, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// FileStorage defines object storage for uploaded files
type FileStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (url string, err error)
}
