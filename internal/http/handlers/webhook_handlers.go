package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/schoolauth/domain"
)

// WebhookHandlers receives delivery reports from the SMS provider
type WebhookHandlers struct {
	deliverySvc domain.DeliveryService
}

// NewWebhookHandlers creates new webhook handlers
func NewWebhookHandlers(deliverySvc domain.DeliveryService) *WebhookHandlers {
	return &WebhookHandlers{deliverySvc: deliverySvc}
}

// SMSDeliveryReport is the provider's callback payload
type SMSDeliveryReport struct {
	MsgFollowUpUniqueCode string `json:"MsgFollowUpUniqueCode"`
	Number                string `json:"number"`
	Status                string `json:"Status"`
}

// SMSDelivery handles POST /webhooks/sms-delivery. The provider retries
// non-200 responses, so this endpoint acknowledges every request it can
// parse or not; failures are logged and reconciled out-of-band.
func (h *WebhookHandlers) SMSDelivery(c *gin.Context) {
	var report SMSDeliveryReport
	if err := c.ShouldBindJSON(&report); err != nil {
		log.Printf("sms webhook: malformed payload: %v", err)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if err := h.deliverySvc.HandleReport(c.Request.Context(), report.MsgFollowUpUniqueCode, report.Number, report.Status); err != nil {
		log.Printf("sms webhook: report for %s not applied: %v", report.MsgFollowUpUniqueCode, err)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
