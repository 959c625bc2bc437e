package usecase

import (
	"context"
	"log/slog"

	"github.com/Rishu9835/DOORWISE/internal/access/entity"
	"github.com/Rishu9835/DOORWISE/internal/pkg/goerror"
	"github.com/Rishu9835/DOORWISE/internal/pkg/mail"
)

const (
	triggerCron  = "cron"
	triggerAdmin = "admin"
)

type PasswordChangeInput struct {
	CronJobPass string
	// OTP is compared verbatim against the issued reset code.
	OTP     string
	Confirm bool
}

type PasswordChangeOutput struct {
	// Sent is true when a reset code was mailed instead of rotating.
	Sent   bool
	Report *entity.RotationReport
}

// PasswordChange rotates every member password. A scheduler authenticates
// with the cron secret; an admin first requests a reset code and then
// confirms with it.
func (s *Usecase) PasswordChange(ctx context.Context, in PasswordChangeInput) (*PasswordChangeOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordChange")
	defer span.End()

	if in.CronJobPass != "" {
		if s.cronAuthorized(in.CronJobPass) {
			report, err := s.rotate(ctx, triggerCron, nil)
			if err != nil {
				return nil, err
			}
			return &PasswordChangeOutput{Report: report}, nil
		}
		slog.WarnContext(ctx, "cron secret rejected, falling back to admin checks")
	}

	issuer, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if in.OTP == "" {
		if err := s.passwordResetChallenge(ctx, issuer); err != nil {
			return nil, err
		}
		return &PasswordChangeOutput{Sent: true}, nil
	}

	if !in.Confirm {
		return nil, goerror.NewInvalidInput(nil, "confirm", "confirm must be true to rotate every member password")
	}

	// The code is redeemed under the rotation lock so a busy lock leaves it usable.
	report, err := s.rotate(ctx, triggerAdmin, func(ctx context.Context) error {
		_, err := s.verifyOTP(ctx, in.OTP, entity.PurposeReset)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &PasswordChangeOutput{Report: report}, nil
}

func (s *Usecase) cronAuthorized(secret string) bool {
	hashed := s.cfg.GetString("modules.access.cron.secret_hash")
	if hashed == "" {
		return false
	}
	return s.bcrypt.Verify(hashed, secret)
}

func (s *Usecase) passwordResetChallenge(ctx context.Context, issuer string) error {
	admins, err := s.adminEmails(ctx)
	if err != nil {
		return err
	}

	ttl := s.cfg.GetMinute("modules.access.otp.reset_ttl_minutes")

	rec, err := s.newOTP(ctx, entity.PurposeReset, ttl)
	if err != nil {
		return err
	}

	if err := s.saveOTP(ctx, rec); err != nil {
		return err
	}

	if _, err := s.notifyAdmins(ctx, admins, func(to string) (mail.Message, error) {
		return s.resetOTPMail(to, issuer, rec.Code, ttl)
	}); err != nil {
		return err
	}

	return nil
}
