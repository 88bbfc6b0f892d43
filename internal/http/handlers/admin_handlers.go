package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/schoolauth/domain"
)

// AdminHandlers exposes delivery-record inspection for operators
type AdminHandlers struct {
	deliverySvc domain.DeliveryService
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(deliverySvc domain.DeliveryService) *AdminHandlers {
	return &AdminHandlers{deliverySvc: deliverySvc}
}

// ListDeliveries handles GET /admin/deliveries
func (h *AdminHandlers) ListDeliveries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := h.deliverySvc.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list delivery records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deliveries": records, "count": len(records)})
}

// ResendDelivery handles POST /admin/deliveries/:id/resend
func (h *AdminHandlers) ResendDelivery(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery id"})
		return
	}

	if err := h.deliverySvc.Resend(c.Request.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrDeliveryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "delivery record not found"})
		case errors.Is(err, domain.ErrDeliveryNotResendable):
			c.JSON(http.StatusConflict, gin.H{"error": "only failed deliveries can be resent"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resend message"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message resubmitted", "delivery_id": id})
}
