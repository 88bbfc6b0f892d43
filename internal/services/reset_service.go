package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/you/schoolauth/domain"
)

// ResetServiceImpl implements domain.ResetService
type ResetServiceImpl struct {
	userRepo     domain.UserRepository
	otpSvc       domain.OTPService
	smsSender    domain.SMSSender
	emailSender  domain.EmailSender
	deliveryRepo domain.DeliveryRepository
	passwordSvc  domain.PasswordService
	tokenSvc     domain.TokenService
	otpTTL       time.Duration
}

// NewResetService creates a new password-reset service
func NewResetService(
	userRepo domain.UserRepository,
	otpSvc domain.OTPService,
	smsSender domain.SMSSender,
	emailSender domain.EmailSender,
	deliveryRepo domain.DeliveryRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpTTL time.Duration,
) domain.ResetService {
	return &ResetServiceImpl{
		userRepo:     userRepo,
		otpSvc:       otpSvc,
		smsSender:    smsSender,
		emailSender:  emailSender,
		deliveryRepo: deliveryRepo,
		passwordSvc:  passwordSvc,
		tokenSvc:     tokenSvc,
		otpTTL:       otpTTL,
	}
}

// RequestReset implements domain.ResetService. It issues an OTP for the
// phone number, submits it to the SMS gateway and records the submission in
// the delivery audit trail. A transport failure leaves the pending OTP
// record valid so the user can retry or rely on a side channel.
func (s *ResetServiceImpl) RequestReset(ctx context.Context, phone, username string) error {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if err == domain.ErrUserNotFound {
			log.Printf("%s: phone=%s timestamp=%s",
				domain.ResetUnknownPhoneEvent, phone, time.Now().UTC().Format(time.RFC3339))
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if username != "" && user.Username != username {
		log.Printf("%s: phone=%s username_mismatch timestamp=%s",
			domain.ResetUnknownPhoneEvent, phone, time.Now().UTC().Format(time.RFC3339))
		return domain.ErrUserNotFound
	}

	record, err := s.otpSvc.Issue(ctx, phone)
	if err != nil {
		return err
	}

	log.Printf("%s: phone=%s user_id=%d timestamp=%s",
		domain.ResetRequestedEvent, phone, user.ID, time.Now().UTC().Format(time.RFC3339))

	message := fmt.Sprintf("Your password reset code is %s. Valid for %d minutes.",
		record.Code, int(s.otpTTL.Minutes()))

	providerID, sendErr := s.smsSender.Send(ctx, phone, message)

	delivery := &domain.DeliveryRecord{
		ProviderMessageID: providerID,
		Recipient:         phone,
		BodySnapshot:      message,
		Status:            domain.DeliveryPending,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if sendErr != nil {
		delivery.Status = domain.DeliveryFailed
	}
	if err := s.deliveryRepo.Create(ctx, delivery); err != nil {
		log.Printf("DELIVERY_RECORD_CREATE_FAILED: phone=%s error=%v", phone, err)
	}

	if sendErr != nil {
		log.Printf("%s: phone=%s error=%v timestamp=%s",
			domain.SMSSubmitFailedEvent, phone, sendErr, time.Now().UTC().Format(time.RFC3339))
		// The OTP record stays pending; only the transport failed.
		return domain.ErrSMSSendFailed
	}

	log.Printf("%s: phone=%s provider_message_id=%s timestamp=%s",
		domain.SMSSubmittedEvent, phone, providerID, time.Now().UTC().Format(time.RFC3339))

	return nil
}

// ConfirmReset implements domain.ResetService: the single-call path that
// verifies the OTP and updates the password in one request.
func (s *ResetServiceImpl) ConfirmReset(ctx context.Context, phone, code, newPassword string) error {
	if err := s.otpSvc.Verify(ctx, phone, code); err != nil {
		log.Printf("%s: phone=%s reason=%v timestamp=%s",
			domain.ResetOTPFailureEvent, phone, err, time.Now().UTC().Format(time.RFC3339))
		return err
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}

	if err := s.updatePassword(ctx, user, newPassword); err != nil {
		return err
	}

	if err := s.otpSvc.Consume(ctx, phone); err != nil {
		log.Printf("OTP_CONSUME_FAILED: phone=%s error=%v", phone, err)
	}

	log.Printf("%s: phone=%s user_id=%d timestamp=%s",
		domain.ResetCompletedEvent, phone, user.ID, time.Now().UTC().Format(time.RFC3339))

	return nil
}

// VerifyOTP implements domain.ResetService: the two-step path that mints a
// short-lived reset credential for the subsequent password-update call.
func (s *ResetServiceImpl) VerifyOTP(ctx context.Context, identifier, code string) (*domain.VerifiedReset, error) {
	if err := s.otpSvc.Verify(ctx, identifier, code); err != nil {
		log.Printf("%s: identifier=%s reason=%v timestamp=%s",
			domain.ResetOTPFailureEvent, identifier, err, time.Now().UTC().Format(time.RFC3339))
		return nil, err
	}

	user, err := s.userRepo.FindByPhone(ctx, identifier)
	if err != nil {
		return nil, err
	}

	token, err := s.tokenSvc.GenerateResetToken(identifier, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to mint reset token: %w", err)
	}

	log.Printf("%s: identifier=%s user_id=%d timestamp=%s",
		domain.ResetOTPVerifiedEvent, identifier, user.ID, time.Now().UTC().Format(time.RFC3339))

	return &domain.VerifiedReset{
		ResetToken: token,
		UserID:     user.ID,
	}, nil
}

// ResetWithToken implements domain.ResetService, consuming a reset
// credential minted by VerifyOTP.
func (s *ResetServiceImpl) ResetWithToken(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokenSvc.ValidateResetToken(token)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return err
	}

	if err := s.updatePassword(ctx, user, newPassword); err != nil {
		return err
	}

	if err := s.otpSvc.Consume(ctx, claims.Identifier); err != nil {
		log.Printf("OTP_CONSUME_FAILED: identifier=%s error=%v", claims.Identifier, err)
	}

	log.Printf("%s: identifier=%s user_id=%d timestamp=%s",
		domain.ResetCompletedEvent, claims.Identifier, user.ID, time.Now().UTC().Format(time.RFC3339))

	return nil
}

func (s *ResetServiceImpl) updatePassword(ctx context.Context, user *domain.User, newPassword string) error {
	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Best-effort confirmation; the reset already succeeded.
	if user.Email != "" {
		if err := s.emailSender.Send(user.Email,
			"Your password was changed",
			"Your account password was just reset. If this was not you, contact the school office immediately."); err != nil {
			log.Printf("RESET_CONFIRMATION_EMAIL_FAILED: user_id=%d error=%v", user.ID, err)
		}
	}

	return nil
}
