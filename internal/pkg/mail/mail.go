package mail

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNoRecipients is returned when Message.To is empty.
	ErrNoRecipients = errors.New("no recipients provided")
	// ErrNoSender is returned when neither Message.From nor the default sender is set.
	ErrNoSender = errors.New("no sender provided")
)

// Message is a provider-agnostic email payload.
type Message struct {
	// From overrides the configured sender address when set.
	From string
	// To lists the recipients.
	To []string
	// Subject is the email subject line.
	Subject string
	// TextBody is the plain-text body.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
}

// Mail abstracts an email provider.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}

// sender resolves the effective sender address and validates recipients.
func (m Message) sender(fallback string) (string, error) {
	if len(m.To) == 0 {
		return "", ErrNoRecipients
	}
	if m.From != "" {
		return m.From, nil
	}
	if fallback == "" {
		return "", ErrNoSender
	}
	return fallback, nil
}
