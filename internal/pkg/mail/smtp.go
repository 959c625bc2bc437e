package mail

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"net"
	netmail "net/mail"
	"net/smtp"
	"strconv"
	"strings"
)

// ErrSMTPHostPortRequired is returned when Host or Port is missing.
var ErrSMTPHostPortRequired = errors.New("smtp host and port are required")

// SMTPConfig configures the SMTP driver.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the default sender address.
	From string
	// FromName is the display name placed in the From header.
	FromName string
}

// SMTP delivers mail with net/smtp using PLAIN auth when credentials are set.
type SMTP struct {
	addr     string
	from     string
	fromName string
	auth     smtp.Auth
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP constructs an SMTP mail sender.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	s := &SMTP{
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		from:     cfg.From,
		fromName: cfg.FromName,
		send:     smtp.SendMail,
	}
	if cfg.Username != "" && cfg.Password != "" {
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return s, nil
}

// Send delivers msg over SMTP.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from, err := msg.sender(s.from)
	if err != nil {
		return err
	}

	raw := s.compose(from, msg)
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.send(s.addr, s.auth, from, msg.To, raw)
}

// Close is a no-op; every Send opens its own connection.
func (s *SMTP) Close() error {
	return nil
}

func (s *SMTP) compose(from string, msg Message) []byte {
	header := (&netmail.Address{Name: s.fromName, Address: from}).String()
	body, contentType := mimeBody(msg)

	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", header)
	fmt.Fprintf(&sb, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&sb, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&sb, "Content-Type: %s\r\n\r\n", contentType)
	sb.WriteString(body)

	return []byte(sb.String())
}

func mimeBody(msg Message) (body, contentType string) {
	switch {
	case msg.HTMLBody == "":
		return msg.TextBody, "text/plain; charset=UTF-8"
	case msg.TextBody == "":
		return msg.HTMLBody, "text/html; charset=UTF-8"
	}

	boundary := boundary()
	var sb strings.Builder
	for _, part := range []struct{ ct, content string }{
		{"text/plain", msg.TextBody},
		{"text/html", msg.HTMLBody},
	} {
		fmt.Fprintf(&sb, "--%s\r\nContent-Type: %s; charset=UTF-8\r\n\r\n%s\r\n", boundary, part.ct, part.content)
	}
	fmt.Fprintf(&sb, "--%s--", boundary)

	return sb.String(), "multipart/alternative; boundary=" + boundary
}

func boundary() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "doorwise-boundary"
	}
	return "doorwise-" + hex.EncodeToString(b[:])
}
