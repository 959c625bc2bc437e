package inbound

import (
	"github.com/Rishu9835/DOORWISE/internal/access/usecase"
	"github.com/Rishu9835/DOORWISE/internal/pkg/router"
)

// HTTPEndpoint exposes the door access workflows over HTTP.
type HTTPEndpoint struct {
	uc uc
}

// AdminLogin mails a code when none is given and exchanges a valid code for a bearer token.
func (h *HTTPEndpoint) AdminLogin(r *router.Request) (any, error) {
	var req AdminLoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.AdminLogin(r.Context(), usecase.AdminLoginInput{
		Email: req.Email,
		OTP:   req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return AdminLoginResponse{AccessToken: resp.AccessToken}, nil
}

func (h *HTTPEndpoint) AdminLogout(r *router.Request) (any, error) {
	var req AdminLogoutRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.AdminLogout(r.Context(), usecase.AdminLogoutInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return AdminLogoutResponse{}, nil
}

// DoorOTP issues a door code to every admin. Requires an admin session.
func (h *HTTPEndpoint) DoorOTP(r *router.Request) (any, error) {
	resp, err := h.uc.DoorOTP(r.Context())
	if err != nil {
		return nil, err
	}

	return DoorOTPResponse{ExpiresAt: resp.ExpiresAt, Recipients: resp.Recipients}, nil
}

func (h *HTTPEndpoint) DoorUnlock(r *router.Request) (any, error) {
	var req DoorUnlockRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.DoorUnlock(r.Context(), usecase.DoorUnlockInput{OTP: req.OTP}); err != nil {
		return nil, err
	}

	return DoorUnlockResponse{Success: true}, nil
}

func (h *HTTPEndpoint) LogEntry(r *router.Request) (any, error) {
	var req LogEntryRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.LogEntry(r.Context(), usecase.LogEntryInput{RegNo: req.RegNo}); err != nil {
		return nil, err
	}

	return LogEntryResponse{}, nil
}

// PasswordChange accepts either the cron secret or an admin reset flow.
func (h *HTTPEndpoint) PasswordChange(r *router.Request) (any, error) {
	var req PasswordChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PasswordChange(r.Context(), usecase.PasswordChangeInput{
		CronJobPass: req.CronJobPass,
		OTP:         req.OTP,
		Confirm:     req.Confirm,
	})
	if err != nil {
		return nil, err
	}

	out := PasswordChangeResponse{Sent: resp.Sent}
	if resp.Report != nil {
		out.Total = resp.Report.Total
		out.Rotated = resp.Report.Rotated
		out.Skipped = resp.Report.Skipped
		out.Failed = resp.Report.Failed
	}

	return out, nil
}

func (h *HTTPEndpoint) ListCredentials(r *router.Request) (any, error) {
	resp, err := h.uc.ListCredentials(r.Context())
	if err != nil {
		return nil, err
	}

	return ListCredentialsResponse{Passwords: resp.Passwords}, nil
}
