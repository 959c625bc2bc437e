package entity

import (
	"strconv"
	"time"
	"unicode/utf8"
)

// OTPRecord is the single live code for a purpose. Code holds the digest of
// the issued code, never the plaintext.
type OTPRecord struct {
	ID        int64
	Code      string
	Purpose   Purpose
	ExpiresAt time.Time
}

// Expired reports whether now is strictly after the expiry instant.
func (r OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// TaskKey identifies the delayed cleanup task bound to this record.
func (r OTPRecord) TaskKey() string {
	return "otp:" + r.Purpose.String() + ":" + strconv.FormatInt(r.ID, 10)
}

// Member is one data row of the roster's member columns.
type Member struct {
	Row   int
	Email string
	RegNo string
}

// Complete reports whether both the email and the registration number are set.
func (m Member) Complete() bool {
	return m.Email != "" && m.RegNo != ""
}

// Password builds a member password from the last four characters of the
// registration number followed by suffix.
func Password(regNo string, suffix int64) string {
	tail := regNo
	if n := utf8.RuneCountInString(regNo); n > 4 {
		runes := []rune(regNo)
		tail = string(runes[n-4:])
	}

	return tail + strconv.FormatInt(suffix, 10)
}

// RotationReport summarizes one credential rotation run.
type RotationReport struct {
	Total   int
	Rotated int
	Skipped int
	Failed  int
}
