package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/you/schoolauth/domain"
)

// DeliveryServiceImpl implements domain.DeliveryService
type DeliveryServiceImpl struct {
	repo      domain.DeliveryRepository
	smsSender domain.SMSSender
}

// NewDeliveryService creates a new delivery reconciliation service
func NewDeliveryService(repo domain.DeliveryRepository, smsSender domain.SMSSender) domain.DeliveryService {
	return &DeliveryServiceImpl{
		repo:      repo,
		smsSender: smsSender,
	}
}

// HandleReport implements domain.DeliveryService. Reports are matched on
// the provider message id; unmatched reports are logged and dropped, and
// re-delivery of an already-applied report is a no-op.
func (s *DeliveryServiceImpl) HandleReport(ctx context.Context, providerMessageID, recipient, status string) error {
	record, err := s.repo.FindByProviderMessageID(ctx, providerMessageID)
	if err != nil {
		if err == domain.ErrDeliveryNotFound {
			log.Printf("%s: provider_message_id=%s recipient=%s status=%s",
				domain.SMSReportUnmatchedEvent, providerMessageID, recipient, status)
			return nil
		}
		return fmt.Errorf("failed to look up delivery record: %w", err)
	}

	mapped := mapProviderStatus(status)
	if record.Status == mapped {
		return nil
	}

	now := time.Now()
	record.Status = mapped
	record.UpdatedAt = now
	if mapped == domain.DeliveryDelivered {
		record.DeliveredAt = &now
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update delivery record: %w", err)
	}

	log.Printf("%s: provider_message_id=%s status=%s", domain.SMSReportMatchedEvent, providerMessageID, mapped)
	return nil
}

// List implements domain.DeliveryService
func (s *DeliveryServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.DeliveryRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Resend implements domain.DeliveryService, re-submitting a failed message
// to the gateway. Delivered or still-pending messages are not resendable.
func (s *DeliveryServiceImpl) Resend(ctx context.Context, id uint) error {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if record.Status != domain.DeliveryFailed {
		return domain.ErrDeliveryNotResendable
	}

	providerID, err := s.smsSender.Send(ctx, record.Recipient, record.BodySnapshot)
	if err != nil {
		return domain.ErrSMSSendFailed
	}

	record.ProviderMessageID = providerID
	record.Status = domain.DeliveryPending
	record.UpdatedAt = time.Now()
	return s.repo.Update(ctx, record)
}

func mapProviderStatus(status string) domain.DeliveryStatus {
	switch strings.ToLower(status) {
	case "success":
		return domain.DeliveryDelivered
	case "failed":
		return domain.DeliveryFailed
	default:
		return domain.DeliveryUnknown
	}
}
