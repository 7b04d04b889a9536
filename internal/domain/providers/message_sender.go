package providers

import (
	"context"
	"fmt"
)

// GatewayError is the messaging gateway's structured error payload.
type GatewayError struct {
	Code     int
	Status   int
	Message  string
	MoreInfo string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error %d (status %d): %s", e.Code, e.Status, e.Message)
}

// MessageSender sends a single message through the SMS/WhatsApp gateway.
// The returned string is the provider's message SID on success.
type MessageSender interface {
	SendSMS(ctx context.Context, to, body string) (string, error)
	SendWhatsApp(ctx context.Context, to, body string) (string, error)
}
