package mail

import (
	"fmt"
	"strings"
)

const (
	// DriverSMTP selects the SMTP driver.
	DriverSMTP = "smtp"
	// DriverBrevo selects the Brevo HTTP API driver.
	DriverBrevo = "brevo"
)

// FactoryOptions carries the per-driver configuration.
type FactoryOptions struct {
	SMTP  SMTPConfig
	Brevo BrevoConfig
}

// NewFromDriver builds the Mail implementation named by driver.
func NewFromDriver(driver string, opts FactoryOptions) (Mail, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSMTP:
		return NewSMTP(opts.SMTP)
	case DriverBrevo:
		return NewBrevo(opts.Brevo)
	default:
		return nil, fmt.Errorf("mail: unsupported driver %q", driver)
	}
}
