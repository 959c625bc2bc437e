package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBrevoBaseURL = "https://api.brevo.com"
	brevoSendPath       = "/v3/smtp/email"
	defaultBrevoTimeout = 15 * time.Second
)

// ErrBrevoAPIKeyRequired is returned when the Brevo API key is empty.
var ErrBrevoAPIKeyRequired = errors.New("brevo api key is required")

// BrevoConfig configures the Brevo transactional email driver.
type BrevoConfig struct {
	APIKey string
	// BaseURL defaults to https://api.brevo.com.
	BaseURL  string
	From     string
	FromName string
	// HTTPClient defaults to a client with a 15 second timeout.
	HTTPClient *http.Client
}

// Brevo sends mail through the Brevo (Sendinblue) HTTP API.
type Brevo struct {
	apiKey   string
	endpoint string
	from     string
	fromName string
	client   *http.Client
}

type brevoContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoPayload struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	TextContent string         `json:"textContent,omitempty"`
	HTMLContent string         `json:"htmlContent,omitempty"`
}

// NewBrevo constructs a Brevo mail sender.
func NewBrevo(cfg BrevoConfig) (*Brevo, error) {
	if cfg.APIKey == "" {
		return nil, ErrBrevoAPIKeyRequired
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBrevoBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultBrevoTimeout}
	}

	return &Brevo{
		apiKey:   cfg.APIKey,
		endpoint: base + brevoSendPath,
		from:     cfg.From,
		fromName: cfg.FromName,
		client:   client,
	}, nil
}

// Send posts msg to the Brevo API. Any non-2xx response is an error.
func (b *Brevo) Send(ctx context.Context, msg Message) error {
	from, err := msg.sender(b.from)
	if err != nil {
		return err
	}

	payload := brevoPayload{
		Sender:      brevoContact{Name: b.fromName, Email: from},
		Subject:     msg.Subject,
		TextContent: msg.TextBody,
		HTMLContent: msg.HTMLBody,
	}
	for _, to := range msg.To {
		payload.To = append(payload.To, brevoContact{Email: to})
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		//nolint:errcheck // body is only used in the error message
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("brevo: send failed status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

// Close releases idle HTTP connections.
func (b *Brevo) Close() error {
	b.client.CloseIdleConnections()
	return nil
}
