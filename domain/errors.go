package domain

import "errors"

// Validation errors
var (
	ErrInvalidPhone     = errors.New("invalid phone number format")
	ErrInvalidOTPFormat = errors.New("otp code must be six digits")
	ErrWeakPassword     = errors.New("password does not meet minimum length")
	ErrEmptyIdentifier  = errors.New("identifier must not be empty")
)

// OTP errors
var (
	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPAlreadyUsed = errors.New("otp already used")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Transport errors
var (
	ErrSMSSendFailed   = errors.New("sms gateway send failed")
	ErrEmailSendFailed = errors.New("email send failed")
)

// Delivery reconciliation errors
var (
	ErrDeliveryNotFound      = errors.New("delivery record not found")
	ErrDeliveryNotResendable = errors.New("delivery record is not in a resendable state")
)

// Storage errors
var (
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrStorageUnavailable = errors.New("file storage is not configured")
)
