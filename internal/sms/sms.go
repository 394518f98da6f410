package sms

import (
	"context"
)

// SendResult holds the outcome of a provider Send call.
type SendResult struct {
	MessageID string
	Status    string
}

// Provider delivers a single message to a destination address. Destinations
// are E.164 phone numbers; WhatsApp destinations carry the "whatsapp:"
// prefix the Twilio Messages API expects.
type Provider interface {
	Send(ctx context.Context, to, body string) (*SendResult, error)
}
