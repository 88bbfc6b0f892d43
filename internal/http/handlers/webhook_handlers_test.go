package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/you/schoolauth/internal/mocks"
)

func setupWebhookRouter(deliverySvc *mocks.MockDeliveryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandlers(deliverySvc)
	r := gin.New()
	r.POST("/webhooks/sms-delivery", h.SMSDelivery)
	return r
}

func TestWebhookHandlers_SMSDelivery(t *testing.T) {
	deliverySvc := mocks.NewMockDeliveryService()
	var gotID, gotNumber, gotStatus string
	deliverySvc.HandleReportFunc = func(ctx context.Context, providerMessageID, recipient, status string) error {
		gotID, gotNumber, gotStatus = providerMessageID, recipient, status
		return nil
	}
	r := setupWebhookRouter(deliverySvc)

	payload := `{"MsgFollowUpUniqueCode":"msg_001","number":"256772611854","Status":"Success"}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/sms-delivery", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotID != "msg_001" || gotNumber != "256772611854" || gotStatus != "Success" {
		t.Errorf("report fields not forwarded: id=%q number=%q status=%q", gotID, gotNumber, gotStatus)
	}
}

func TestWebhookHandlers_SMSDelivery_AlwaysAcknowledges(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		err     error
	}{
		{name: "malformed json", payload: `{not json`},
		{name: "empty body", payload: ``},
		{name: "internal error", payload: `{"MsgFollowUpUniqueCode":"msg_001","Status":"Failed"}`, err: errors.New("db down")},
		{name: "unknown message id", payload: `{"MsgFollowUpUniqueCode":"msg_unknown","Status":"Success"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deliverySvc := mocks.NewMockDeliveryService()
			deliverySvc.HandleReportFunc = func(ctx context.Context, providerMessageID, recipient, status string) error {
				return tt.err
			}
			r := setupWebhookRouter(deliverySvc)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/sms-delivery", strings.NewReader(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// The provider treats non-200 as retry-worthy, so the endpoint
			// must acknowledge whatever it receives.
			if w.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", w.Code)
			}
		})
	}
}
