package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerSnake(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"Email":       "email",
		"RegNo":       "reg_no",
		"OTP":         "otp",
		"OTPCode":     "otp_code",
		"CronJobPass": "cron_job_pass",
		"Col2Index":   "col2_index",
	}

	for in, want := range tests {
		assert.Equal(t, want, ToLowerSnake(in), in)
	}
}
