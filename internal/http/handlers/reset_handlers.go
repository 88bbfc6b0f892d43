package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/schoolauth/domain"
)

var (
	phoneRe = regexp.MustCompile(`^\+?\d{10,15}$`)
	otpRe   = regexp.MustCompile(`^\d{6}$`)
)

const (
	resetTokenCookie = "reset_token"
	resetUserCookie  = "reset_user"
	resetCookieTTL   = 3600 // seconds

	// genericSentMessage is returned whether or not the phone number is
	// registered, so the endpoint cannot be used to enumerate accounts.
	genericSentMessage = "If the phone number is registered, a reset code has been sent."
)

// ResetHandlers handles password-reset HTTP requests
type ResetHandlers struct {
	resetSvc domain.ResetService
}

// NewResetHandlers creates new reset handlers
func NewResetHandlers(resetSvc domain.ResetService) *ResetHandlers {
	return &ResetHandlers{resetSvc: resetSvc}
}

// RequestResetRequest represents an OTP request
type RequestResetRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Username    string `json:"username"`
}

// ConfirmResetRequest represents the single-call verify-and-reset request
type ConfirmResetRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	OtpCode     string `json:"otpCode" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// VerifyOTPRequest represents the two-step OTP verification request
type VerifyOTPRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	OTP        string `json:"otp" binding:"required"`
}

// ResetPasswordRequest represents the credential-based password update
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// RequestReset handles POST /auth/password-reset
func (h *ResetHandlers) RequestReset(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "phoneNumber is required"})
		return
	}

	if !phoneRe.MatchString(req.PhoneNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid phone number format"})
		return
	}

	err := h.resetSvc.RequestReset(c.Request.Context(), req.PhoneNumber, req.Username)
	switch {
	case err == nil, errors.Is(err, domain.ErrUserNotFound):
		// Identical response either way: do not leak account existence.
		c.JSON(http.StatusOK, gin.H{"success": true, "message": genericSentMessage})
	case errors.Is(err, domain.ErrSMSSendFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send reset code. Please try again later."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to process reset request"})
	}
}

// ConfirmReset handles PUT /auth/password-reset
func (h *ResetHandlers) ConfirmReset(c *gin.Context) {
	var req ConfirmResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "phoneNumber, otpCode and newPassword are required"})
		return
	}

	if !phoneRe.MatchString(req.PhoneNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid phone number format"})
		return
	}

	if len(req.NewPassword) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 8 characters"})
		return
	}

	err := h.resetSvc.ConfirmReset(c.Request.Context(), req.PhoneNumber, req.OtpCode, req.NewPassword)
	if err != nil {
		c.JSON(otpErrorStatus(err), gin.H{"success": false, "message": otpErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully"})
}

// VerifyOTP handles POST /auth/verify-otp
func (h *ResetHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope("01", "identifier and otp are required", nil))
		return
	}

	if !otpRe.MatchString(req.OTP) {
		c.JSON(http.StatusBadRequest, envelope("01", "OTP must be a six digit code", nil))
		return
	}

	result, err := h.resetSvc.VerifyOTP(c.Request.Context(), req.Identifier, req.OTP)
	if err != nil {
		c.JSON(otpErrorStatus(err), envelope("01", otpErrorMessage(err), nil))
		return
	}

	c.SetCookie(resetTokenCookie, result.ResetToken, resetCookieTTL, "/", "", false, true)
	c.SetCookie(resetUserCookie, strconv.FormatUint(uint64(result.UserID), 10), resetCookieTTL, "/", "", false, true)

	c.JSON(http.StatusOK, envelope("00", "OTP verified", gin.H{
		"resetToken": result.ResetToken,
		"userId":     result.UserID,
	}))
}

// ResetPassword handles POST /auth/reset-password
func (h *ResetHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "token and newPassword are required"})
		return
	}

	if len(req.NewPassword) < 4 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 4 characters"})
		return
	}

	// The submitted token must match the httpOnly cookie copy set at
	// verification time; the JWT itself is validated server-side as well.
	cookieToken, err := c.Cookie(resetTokenCookie)
	if err != nil || cookieToken != req.Token {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired reset token"})
		return
	}

	if err := h.resetSvc.ResetWithToken(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenExpired),
			errors.Is(err, domain.ErrTokenMalformed), errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired reset token"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to reset password"})
		}
		return
	}

	// Clear reset cookies once the credential is consumed.
	c.SetCookie(resetTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie(resetUserCookie, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully"})
}

func envelope(code, message string, data interface{}) gin.H {
	body := gin.H{
		"status": gin.H{
			"returnCode":    code,
			"returnMessage": message,
		},
	}
	if data != nil {
		body["data"] = data
	}
	return body
}

// otpErrorStatus maps OTP verification errors to HTTP statuses. Not-found
// is reported like an invalid code so the endpoint does not reveal whether
// an identifier has a pending reset.
func otpErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrOTPMaxAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrOTPNotFound), errors.Is(err, domain.ErrOTPInvalid),
		errors.Is(err, domain.ErrOTPExpired), errors.Is(err, domain.ErrOTPAlreadyUsed),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func otpErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrOTPExpired):
		return "OTP code has expired"
	case errors.Is(err, domain.ErrOTPAlreadyUsed):
		return "OTP code already used"
	case errors.Is(err, domain.ErrOTPMaxAttempts):
		return "Maximum verification attempts exceeded"
	case errors.Is(err, domain.ErrOTPNotFound), errors.Is(err, domain.ErrOTPInvalid),
		errors.Is(err, domain.ErrUserNotFound):
		return "Invalid OTP code"
	default:
		return "OTP verification failed"
	}
}
