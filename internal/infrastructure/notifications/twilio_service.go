package notifications

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/logger"
)

// TwilioServiceImpl implements domain.NotificationService over Twilio SMS.
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	fromNumber string
	log        *logger.Logger
}

// NewTwilioService creates a new Twilio notification service. When no from
// number is configured, messages are logged instead of sent.
func NewTwilioService(accountSID, authToken, fromNumber string, log *logger.Logger) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioServiceImpl{
		client:     client,
		fromNumber: fromNumber,
		log:        log,
	}
}

// SendSMS implements domain.NotificationService.
func (t *TwilioServiceImpl) SendSMS(to, message string) error {
	if t.fromNumber == "" {
		t.log.Infow("sms delivery skipped, no from number configured", "to", to, "message", message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
