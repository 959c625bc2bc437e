package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/access/entity"
	"github.com/Rishu9835/DOORWISE/internal/pkg/goerror"
	"github.com/Rishu9835/DOORWISE/internal/pkg/mail"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// newOTP draws a code for purpose. Nothing is stored.
func (s *Usecase) newOTP(ctx context.Context, purpose entity.Purpose, ttl time.Duration) (entity.OTPRecord, error) {
	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp", "purpose", purpose.String(), "error", err)
		return entity.OTPRecord{}, goerror.NewServer(err)
	}

	return entity.OTPRecord{
		ID:        s.uid.Generate(),
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: s.otp.ExpiryFrom(ttl),
	}, nil
}

// saveOTP stores rec and cancels the cleanup task of the record it replaced.
func (s *Usecase) saveOTP(ctx context.Context, rec entity.OTPRecord) error {
	prev, err := s.store.Save(rec)
	if err != nil {
		slog.ErrorContext(ctx, "failed to store otp", "purpose", rec.Purpose.String(), "error", err)
		return goerror.NewServer(err)
	}

	if prev != nil && s.scheduler.Cancel(prev.TaskKey()) {
		slog.InfoContext(ctx, "superseded otp cleanup cancelled", "otp_id", prev.ID, "purpose", prev.Purpose.String())
	}

	s.otpIssued.Add(ctx, 1, metric.WithAttributes(attribute.String("purpose", rec.Purpose.String())))

	return nil
}

// verifyOTP checks code for purpose and consumes it on success.
func (s *Usecase) verifyOTP(ctx context.Context, code string, purpose entity.Purpose) (entity.OTPRecord, error) {
	rec, err := s.store.Verify(code, purpose)

	result := "ok"
	if reason, ok := entity.OTPReason(err); ok {
		result = string(reason)
	}
	s.otpVerified.Add(ctx, 1, metric.WithAttributes(
		attribute.String("purpose", purpose.String()),
		attribute.String("result", result),
	))

	if err != nil {
		slog.WarnContext(ctx, "otp verification failed", "purpose", purpose.String(), "result", result)
		return entity.OTPRecord{}, otpError(err)
	}

	return rec, nil
}

// notifyAdmins mails every admin value that looks like an address and
// returns how many sends succeeded. It fails only when none did.
func (s *Usecase) notifyAdmins(ctx context.Context, admins []string, build func(to string) (mail.Message, error)) (int, error) {
	var (
		delivered int
		errs      []error
	)

	for _, to := range validAddresses(admins) {
		msg, err := build(to)
		if err != nil {
			slog.ErrorContext(ctx, "failed to compose admin email", "to", to, "error", err)
			errs = append(errs, err)
			continue
		}

		if err := s.repoMail.Send(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "failed to send admin email", "to", to, "error", err)
			errs = append(errs, err)
			continue
		}

		delivered++
	}

	if delivered == 0 {
		if len(errs) == 0 {
			errs = append(errs, errors.New("no admin address to notify"))
		}
		return 0, deliveryError(errors.Join(errs...))
	}

	return delivered, nil
}
