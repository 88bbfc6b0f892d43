package notifications

import (
	"context"
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/you/schoolauth/domain"
)

// TwilioService implements domain.SMSSender using the Twilio REST API.
// Selected by the sms.provider config; the message SID becomes the
// provider message id for reconciliation.
type TwilioService struct {
	client      *twilio.RestClient
	fromNumber  string
	countryCode string
}

// NewTwilioService creates a new Twilio SMS sender
func NewTwilioService(accountSID, authToken, fromNumber, countryCode string) domain.SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioService{
		client:      client,
		fromNumber:  fromNumber,
		countryCode: countryCode,
	}
}

// Send implements domain.SMSSender
func (t *TwilioService) Send(ctx context.Context, to, message string) (string, error) {
	// If credentials are not configured, log instead of sending
	if t.fromNumber == "" {
		log.Printf("[MOCK SMS] To: %s, Message: %s", to, message)
		return "", nil
	}

	if len(message) > singleSegmentLimit {
		log.Printf("SMS_OVERLENGTH: number=%s length=%d limit=%d", to, len(message), singleSegmentLimit)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("+" + NormalizePhone(to, t.countryCode))
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSMSSendFailed, err)
	}

	if resp.Sid != nil {
		return *resp.Sid, nil
	}
	return "", nil
}
