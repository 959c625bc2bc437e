package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Rishu9835/DOORWISE/internal/access/entity"
	"github.com/Rishu9835/DOORWISE/internal/pkg/goerror"
	"github.com/Rishu9835/DOORWISE/internal/pkg/idempotency"
)

const rotationKey = "access:credential-rotation"

// rotate runs rotateCredentials under the rotation lock. authorize, when set,
// runs first inside the lock and aborts the rotation on error. The lock only
// excludes concurrent runs and is released once a run ends.
func (s *Usecase) rotate(ctx context.Context, trigger string, authorize func(context.Context) error) (*entity.RotationReport, error) {
	var report entity.RotationReport

	err := s.idemp.Exec(ctx, rotationKey, func(ctx context.Context) error {
		if authorize != nil {
			if err := authorize(ctx); err != nil {
				return err
			}
		}

		r, err := s.rotateCredentials(ctx)
		report = r
		return err
	},
		idempotency.WithLockDuration(s.cfg.GetSecond("modules.access.rotation.lock_seconds")),
		idempotency.WithStateTTL(-1),
	)

	switch {
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		slog.WarnContext(ctx, "credential rotation rejected by lock", "trigger", trigger, "error", err)
		return nil, goerror.NewBusinessWrap(entity.ErrRotationRunning, "Credential rotation already running, try again later", goerror.CodeConflict)
	case err != nil:
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			return nil, err
		}
		slog.ErrorContext(ctx, "failed to acquire credential rotation lock", "trigger", trigger, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "credential rotation finished",
		"trigger", trigger,
		"total", report.Total,
		"rotated", report.Rotated,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)

	if err := s.repoMessaging.PublishCredentialsRotated(ctx, CredentialsRotatedEvent{
		Trigger:   trigger,
		Report:    report,
		RotatedAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish credentials rotated", "trigger", trigger, "error", err)
	}

	return &report, nil
}

// rotateCredentials gives every complete member row a new password. The
// member is mailed first and the roster is written only after the mail went
// out. Per-member failures are logged and counted.
func (s *Usecase) rotateCredentials(ctx context.Context) (entity.RotationReport, error) {
	ctx, span := s.startSpan(ctx, "rotateCredentials")
	defer span.End()

	var report entity.RotationReport

	emails, err := s.repoRoster.MemberEmails(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get member emails", "error", err)
		return report, rosterError(err)
	}

	regNos, err := s.repoRoster.MemberRegNos(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get member reg numbers", "error", err)
		return report, rosterError(err)
	}

	if len(emails) == 0 && len(regNos) == 0 {
		slog.InfoContext(ctx, "no members found in roster", "emails", len(emails), "reg_nos", len(regNos))
		return report, nil
	}

	if len(emails) != len(regNos) {
		slog.ErrorContext(ctx, "member columns differ in length", "emails", len(emails), "reg_nos", len(regNos))
		return report, goerror.NewBusinessWrap(entity.ErrDataMismatch, "Roster member data is inconsistent", goerror.CodeInternal)
	}

	minSuffix := s.cfg.GetInt64("modules.access.password.suffix_min")
	maxSuffix := s.cfg.GetInt64("modules.access.password.suffix_max")

	report.Total = len(emails)
	for i := range emails {
		m := entity.Member{Row: i, Email: emails[i], RegNo: regNos[i]}
		if !m.Complete() {
			report.Skipped++
			continue
		}

		if s.rotateMember(ctx, m, minSuffix, maxSuffix) {
			report.Rotated++
		} else {
			report.Failed++
		}
	}

	return report, nil
}

func (s *Usecase) rotateMember(ctx context.Context, m entity.Member, minSuffix, maxSuffix int64) bool {
	suffix, err := s.otp.Between(minSuffix, maxSuffix)
	if err != nil {
		slog.ErrorContext(ctx, "failed to draw password suffix", "row", m.Row, "error", err)
		return false
	}

	password := entity.Password(m.RegNo, suffix)

	msg, err := s.memberPasswordMail(m.Email, password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to compose member password email", "row", m.Row, "error", err)
		return false
	}

	if err := s.repoMail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send member password email", "row", m.Row, "email", m.Email, "error", err)
		return false
	}

	if err := s.repoRoster.WritePassword(ctx, m.Row, password); err != nil {
		slog.ErrorContext(ctx, "failed to repo write member password", "row", m.Row, "email", m.Email, "error", err)
		return false
	}

	return true
}
