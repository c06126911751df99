package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

type TwilioSender struct {
	FromNumber string
	Client     *twilio.RestClient
}

func NewTwilioSender(accountSid, authToken, fromNumber string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &TwilioSender{
		FromNumber: fromNumber,
		Client:     client,
	}
}

func (t *TwilioSender) Send(ctx context.Context, to, body string) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := &api.CreateMessageParams{}
	params.SetBody(body)
	params.SetFrom(t.FromNumber)
	params.SetTo(to)

	resp, err := t.Client.Api.CreateMessage(params)
	if err != nil {
		return nil, err
	}
	if resp.ErrorMessage != nil && *resp.ErrorMessage != "" {
		return nil, fmt.Errorf("twilio: %s", *resp.ErrorMessage)
	}

	receipt := &Receipt{Status: "queued"}
	if resp.Sid != nil {
		receipt.MessageID = *resp.Sid
	}
	if resp.Status != nil {
		receipt.Status = *resp.Status
	}
	if receipt.Status == "failed" || receipt.Status == "undelivered" {
		return nil, fmt.Errorf("twilio rejected message %s: %s", receipt.MessageID, receipt.Status)
	}
	return receipt, nil
}
