package delivery

import (
	"context"
	"errors"
)

// ErrUnreachable reports that the recipient cannot receive messages at all
// (no contact address on file, or the provider rejects the address). The
// dispatcher treats it as a warning, not a retryable failure.
var ErrUnreachable = errors.New("recipient unreachable")

// Recipient identifies where a rendered reminder should go
type Recipient struct {
	UserID   uint
	Username string
	Email    string
}

// Message is a rendered notification ready for delivery
type Message struct {
	Subject string
	Body    string
}

// Sink delivers rendered messages to household members. Implementations must
// honor ctx cancellation so a hung provider cannot stall a dispatch batch.
type Sink interface {
	Deliver(ctx context.Context, to Recipient, msg Message) error
}
