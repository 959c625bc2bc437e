package inbound

import "time"

type AdminLoginRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type AdminLoginResponse struct {
	AccessToken string `json:"access_token,omitempty"`
}

func (r AdminLoginResponse) Message() string {
	if r.AccessToken == "" {
		return "OTP sent to your email"
	}
	return "Logged in"
}

type AdminLogoutRequest struct {
	Email string `json:"email"`
}

type AdminLogoutResponse struct{}

func (AdminLogoutResponse) Message() string {
	return "Logged out"
}

type DoorOTPResponse struct {
	ExpiresAt  time.Time `json:"expires_at"`
	Recipients int       `json:"recipients"`
}

func (DoorOTPResponse) Message() string {
	return "Door OTP sent to admins"
}

type DoorUnlockRequest struct {
	OTP string `json:"otp"`
}

type DoorUnlockResponse struct {
	Success bool `json:"success"`
}

func (DoorUnlockResponse) Message() string {
	return "Door unlocked"
}

type LogEntryRequest struct {
	RegNo string `json:"reg_no"`
}

type LogEntryResponse struct{}

func (LogEntryResponse) Message() string {
	return "User entered"
}

type PasswordChangeRequest struct {
	CronJobPass string `json:"cron_job_pass"`
	OTP         string `json:"otp"`
	Confirm     bool   `json:"confirm"`
}

type PasswordChangeResponse struct {
	Sent    bool `json:"sent,omitempty"`
	Total   int  `json:"total"`
	Rotated int  `json:"rotated"`
	Skipped int  `json:"skipped"`
	Failed  int  `json:"failed"`
}

func (r PasswordChangeResponse) Message() string {
	if r.Sent {
		return "Reset OTP sent to admins"
	}
	return "Password changed successfully"
}

type ListCredentialsResponse struct {
	Passwords []string `json:"passwords"`
}
