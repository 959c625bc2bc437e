package entity

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPassword(t *testing.T) {
	tests := []struct {
		name   string
		regNo  string
		suffix int64
		want   string
	}{
		{name: "long reg no keeps last four", regNo: "RA2211003010123", suffix: 4821, want: "01234821"},
		{name: "exactly four", regNo: "0123", suffix: 1000, want: "01231000"},
		{name: "shorter than four keeps all", regNo: "42", suffix: 9999, want: "429999"},
		{name: "multibyte runes", regNo: "abéècd", suffix: 1234, want: "éècd1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Password(tt.regNo, tt.suffix))
		})
	}
}

func TestOTPRecord_Expired(t *testing.T) {
	exp := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	rec := OTPRecord{ExpiresAt: exp}

	assert.False(t, rec.Expired(exp.Add(-time.Second)))
	assert.False(t, rec.Expired(exp))
	assert.True(t, rec.Expired(exp.Add(time.Nanosecond)))
}

func TestOTPRecord_TaskKey(t *testing.T) {
	rec := OTPRecord{ID: 77, Purpose: PurposeDoor}
	assert.Equal(t, "otp:DOOR:77", rec.TaskKey())
}

func TestOTPReason(t *testing.T) {
	err := fmt.Errorf("verify: %w", NewOTPError(ReasonMismatch))

	reason, ok := OTPReason(err)
	assert.True(t, ok)
	assert.Equal(t, ReasonMismatch, reason)

	_, ok = OTPReason(errors.New("plain"))
	assert.False(t, ok)
}

func TestMember_Complete(t *testing.T) {
	assert.True(t, Member{Email: "a@x.io", RegNo: "1"}.Complete())
	assert.False(t, Member{Email: "a@x.io"}.Complete())
	assert.False(t, Member{RegNo: "1"}.Complete())
}
