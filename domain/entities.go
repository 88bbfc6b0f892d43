package domain

import "time"

// User represents a user in the system
type User struct {
	ID           uint
	Username     string
	Email        string
	Phone        string
	PasswordHash string `gorm:"column:password"`
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OTPRecord is the pending/verified state of a one-time password issued
// for an identifier. At most one active record exists per identifier; a
// new issuance overwrites any prior record.
type OTPRecord struct {
	Identifier string    `json:"identifier"`
	Code       string    `json:"code"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	Attempts   int       `json:"attempts"`
	Verified   bool      `json:"verified"`
}

// Expired reports whether the record is past its expiry at the given time.
// Validity is always judged against the record itself, never against store
// eviction.
func (r *OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// DeliveryStatus is the reconciliation state of a submitted SMS message.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryFailed    DeliveryStatus = "FAILED"
	DeliveryUnknown   DeliveryStatus = "UNKNOWN"
)

// DeliveryRecord is the audit trail entry for a message submitted to the
// SMS gateway. Records are never deleted; status is only mutated by
// inbound delivery reports matched on ProviderMessageID.
type DeliveryRecord struct {
	ID                uint
	ProviderMessageID string
	Recipient         string
	BodySnapshot      string
	Status            DeliveryStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeliveredAt       *time.Time
}

// TokenClaims represents the claims carried by a signed service token.
type TokenClaims struct {
	UserID     uint   `json:"user_id"`
	Identifier string `json:"identifier,omitempty"`
	Role       string `json:"role,omitempty"`
	Scope      string `json:"scope"`
	IssuedAt   int64  `json:"iat"`
	ExpiresAt  int64  `json:"exp"`
}

// VerifiedReset is the outcome of a successful OTP verification: a
// short-lived credential bound to the identifier for the subsequent
// password-update step.
type VerifiedReset struct {
	ResetToken string
	UserID     uint
}
