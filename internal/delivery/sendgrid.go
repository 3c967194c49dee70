package delivery

import (
	"context"
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSink delivers reminders as transactional email
type SendGridSink struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewSendGridSink builds a sink from the SENDGRID_* environment variables
func NewSendGridSink() *SendGridSink {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_NOTIFICATIONS_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")

	return &SendGridSink{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Deliver sends one message to one member
func (s *SendGridSink) Deliver(ctx context.Context, to Recipient, msg Message) error {
	if to.Email == "" {
		// Member never registered a contact address
		return ErrUnreachable
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	dest := mail.NewEmail(to.Username, to.Email)
	email := mail.NewSingleEmail(from, msg.Subject, dest, msg.Body,
		fmt.Sprintf("<p>%s</p>", msg.Body))

	response, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email to %s: %d", to.Email, response.StatusCode)
	}
	return nil
}
