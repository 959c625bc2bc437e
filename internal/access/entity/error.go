package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNotAdmin        = errors.New("email is not a registered admin")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotLoggedIn     = errors.New("admin is not logged in")
	ErrDelivery        = errors.New("notification delivery failed")
	ErrRoster          = errors.New("roster operation failed")
	ErrDataMismatch    = errors.New("roster member columns have different lengths")
	ErrRotationRunning = errors.New("credential rotation already running")
)

// OTPError is returned when a code does not verify.
type OTPError struct {
	Reason Reason
}

func (e *OTPError) Error() string {
	return fmt.Sprintf("otp invalid: %s", e.Reason)
}

// NewOTPError returns an OTPError for reason.
func NewOTPError(reason Reason) *OTPError {
	return &OTPError{Reason: reason}
}

// OTPReason extracts the failure reason from err, if it carries one.
func OTPReason(err error) (Reason, bool) {
	var oe *OTPError
	if errors.As(err, &oe) {
		return oe.Reason, true
	}

	return "", false
}
