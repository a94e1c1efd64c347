package email

import (
	"context"
	"fmt"
	"regexp"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending a single email.
type SendEmailParams struct {
	SendTo        string `json:"send_to"`                  // Email address of the recipient
	Subject       string `json:"subject"`                  // Subject of the email
	BodyHTML      string `json:"body_html,omitempty"`      // HTML body of the email
	BodyText      string `json:"body_text,omitempty"`      // Plain-text body, used when BodyHTML is empty
	Tag           string `json:"tag,omitempty"`            // Optional categorization tag
	MessageStream string `json:"message_stream,omitempty"` // Postmark message stream, defaults to "notifications"
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validate checks that the params describe a sendable email.
func (p SendEmailParams) Validate() error {
	if p.SendTo == "" || !emailRegex.MatchString(p.SendTo) {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if p.BodyHTML == "" && p.BodyText == "" {
		return fmt.Errorf("%w: either BodyHTML or BodyText is required", ErrInvalidParams)
	}
	return nil
}
