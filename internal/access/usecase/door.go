package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/access/entity"
	"github.com/Rishu9835/DOORWISE/internal/pkg/delay"
	"github.com/Rishu9835/DOORWISE/internal/pkg/goerror"
	"github.com/Rishu9835/DOORWISE/internal/pkg/mail"
)

type DoorOTPOutput struct {
	ExpiresAt  time.Time
	Recipients int
}

// DoorOTP issues a door code. The code is written to the roster door cell,
// stored, and mailed to every admin. A cleanup task blanks the cell once the
// code expires.
func (s *Usecase) DoorOTP(ctx context.Context) (*DoorOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "DoorOTP")
	defer span.End()

	issuer, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	admins, err := s.adminEmails(ctx)
	if err != nil {
		return nil, err
	}

	ttl := s.cfg.GetMinute("modules.access.otp.door_ttl_minutes")

	rec, err := s.newOTP(ctx, entity.PurposeDoor, ttl)
	if err != nil {
		return nil, err
	}

	if err := s.repoRoster.WriteDoorCode(ctx, rec.Code); err != nil {
		slog.ErrorContext(ctx, "failed to repo write door code", "otp_id", rec.ID, "error", err)
		return nil, rosterError(err)
	}

	if err := s.saveOTP(ctx, rec); err != nil {
		return nil, err
	}

	s.scheduler.Schedule(rec.TaskKey(), ttl, s.doorCleanup(rec))

	delivered, err := s.notifyAdmins(ctx, admins, func(to string) (mail.Message, error) {
		return s.doorOTPMail(to, issuer, rec.Code, ttl)
	})
	if err != nil {
		s.revokeDoorCode(ctx, rec)
		return nil, err
	}

	if err := s.repoMessaging.PublishDoorIssued(ctx, DoorIssuedEvent{
		OTPID:      rec.ID,
		IssuedBy:   issuer,
		ExpiresAt:  rec.ExpiresAt,
		Recipients: delivered,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish door issued", "otp_id", rec.ID, "error", err)
	}

	return &DoorOTPOutput{ExpiresAt: rec.ExpiresAt, Recipients: delivered}, nil
}

// doorCleanup sweeps expired codes and blanks the door cell.
func (s *Usecase) doorCleanup(rec entity.OTPRecord) delay.Task {
	return func(ctx context.Context) error {
		ctx, span := s.startSpan(ctx, "DoorCleanup")
		defer span.End()

		removed := s.store.Sweep()

		if err := s.repoRoster.WriteDoorCode(ctx, ""); err != nil {
			slog.ErrorContext(ctx, "failed to repo clear door code", "otp_id", rec.ID, "error", err)
			return err
		}

		slog.InfoContext(ctx, "door otp expired and cleared", "otp_id", rec.ID, "swept", removed)

		return nil
	}
}

// revokeDoorCode withdraws a door code nobody received.
func (s *Usecase) revokeDoorCode(ctx context.Context, rec entity.OTPRecord) {
	s.scheduler.Cancel(rec.TaskKey())

	if !s.store.Discard(rec) {
		return
	}

	if err := s.repoRoster.WriteDoorCode(ctx, ""); err != nil {
		slog.ErrorContext(ctx, "failed to repo clear undelivered door code", "otp_id", rec.ID, "error", err)
		return
	}

	slog.WarnContext(ctx, "door otp revoked, no admin received it", "otp_id", rec.ID)
}

type DoorUnlockInput struct {
	// OTP is compared verbatim against the issued code.
	OTP string `validate:"required"`
}

// DoorUnlock redeems a door code. No admin session is needed.
func (s *Usecase) DoorUnlock(ctx context.Context, in DoorUnlockInput) error {
	ctx, span := s.startSpan(ctx, "DoorUnlock")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	rec, err := s.verifyOTP(ctx, in.OTP, entity.PurposeDoor)
	if err != nil {
		return err
	}

	s.scheduler.Cancel(rec.TaskKey())

	slog.InfoContext(ctx, "door unlocked", "otp_id", rec.ID)

	if err := s.repoMessaging.PublishDoorUnlocked(ctx, DoorUnlockedEvent{
		OTPID:      rec.ID,
		UnlockedAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish door unlocked", "otp_id", rec.ID, "error", err)
	}

	return nil
}
