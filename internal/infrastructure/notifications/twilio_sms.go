package notifications

import (
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSMS sends SMS messages through Twilio. When no sender number is
// configured the message is logged instead, which keeps local development
// working without credentials.
type TwilioSMS struct {
	client     *twilio.RestClient
	fromNumber string
	logger     *slog.Logger
}

// NewTwilioSMS creates a new Twilio SMS sender.
func NewTwilioSMS(accountSID, authToken, fromNumber string, logger *slog.Logger) *TwilioSMS {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSMS{
		client:     client,
		fromNumber: fromNumber,
		logger:     logger,
	}
}

// Send delivers one SMS to the given E.164 number.
func (t *TwilioSMS) Send(to, message string) error {
	if t.fromNumber == "" {
		t.logger.Info("sms delivery skipped, no sender configured",
			slog.String("to", to))
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	return nil
}
