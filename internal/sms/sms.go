// Package sms handles phone-number verification. Handlers depend on the
// Verifier interface; the Twilio Verify implementation is injected at wiring.
package sms

import (
	"context"
	"os"

	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

type Verifier interface {
	SendCode(ctx context.Context, phone string) error
	CheckCode(ctx context.Context, phone, code string) (bool, error)
}

// TwilioVerifier drives the Twilio Verify service. Credentials come from
// TWILIO_ACCOUNT_SID / TWILIO_AUTH_TOKEN, the service from
// TWILIO_VERIFY_SERVICE_SID.
type TwilioVerifier struct {
	client     *twilio.RestClient
	serviceSID string
}

func NewTwilioVerifier() *TwilioVerifier {
	return &TwilioVerifier{
		client:     twilio.NewRestClient(),
		serviceSID: os.Getenv("TWILIO_VERIFY_SERVICE_SID"),
	}
}

func (v *TwilioVerifier) SendCode(_ context.Context, phone string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phone)
	params.SetChannel("sms")

	_, err := v.client.VerifyV2.CreateVerification(v.serviceSID, params)
	return err
}

func (v *TwilioVerifier) CheckCode(_ context.Context, phone, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phone)
	params.SetCode(code)

	resp, err := v.client.VerifyV2.CreateVerificationCheck(v.serviceSID, params)
	if err != nil {
		return false, err
	}
	return resp.Status != nil && *resp.Status == "approved", nil
}
