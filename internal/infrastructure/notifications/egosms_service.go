package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/you/schoolauth/domain"
)

// singleSegmentLimit is the provider's single-segment character limit.
// Longer messages are sent anyway with a logged warning.
const singleSegmentLimit = 160

// EgoSMSService implements domain.SMSSender against an EgoSMS-style HTTP
// gateway. The plain-text API signals success with the literal body "OK";
// the JSON API wraps it in an envelope that may carry a follow-up code used
// later for delivery-report reconciliation.
type EgoSMSService struct {
	client      *http.Client
	apiURL      string
	username    string
	password    string
	senderID    string
	priority    int
	countryCode string
}

// NewEgoSMSService creates a new EgoSMS gateway client
func NewEgoSMSService(apiURL, username, password, senderID string, priority int, countryCode string) domain.SMSSender {
	return &EgoSMSService{
		client:      &http.Client{Timeout: 30 * time.Second},
		apiURL:      apiURL,
		username:    username,
		password:    password,
		senderID:    senderID,
		priority:    priority,
		countryCode: countryCode,
	}
}

type egoSMSResponse struct {
	Status               string `json:"Status"`
	Message              string `json:"Message"`
	MsgFollowUpUniqueCode string `json:"MsgFollowUpUniqueCode"`
}

// Send implements domain.SMSSender
func (s *EgoSMSService) Send(ctx context.Context, to, message string) (string, error) {
	number := NormalizePhone(to, s.countryCode)

	if len(message) > singleSegmentLimit {
		log.Printf("SMS_OVERLENGTH: number=%s length=%d limit=%d", number, len(message), singleSegmentLimit)
	}

	form := url.Values{}
	form.Set("username", s.username)
	form.Set("password", s.password)
	form.Set("number", number)
	form.Set("message", message)
	form.Set("sender", s.senderID)
	form.Set("priority", strconv.Itoa(s.priority))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSMSSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSMSSendFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", domain.ErrSMSSendFailed, err)
	}

	trimmed := strings.TrimSpace(string(body))

	// Plain-text API success
	if trimmed == "OK" {
		return "", nil
	}

	// JSON envelope
	var envelope egoSMSResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Status != "" {
		if strings.EqualFold(envelope.Status, "OK") {
			return envelope.MsgFollowUpUniqueCode, nil
		}
		return "", fmt.Errorf("%w: provider status %s: %s", domain.ErrSMSSendFailed, envelope.Status, envelope.Message)
	}

	return "", fmt.Errorf("%w: unexpected provider response %q", domain.ErrSMSSendFailed, trimmed)
}
